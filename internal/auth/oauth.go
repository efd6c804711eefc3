package auth

import (
	"fmt"

	"golang.org/x/oauth2"
)

// Strava OAuth endpoints.
const (
	authURL  = "https://www.strava.com/oauth/authorize"
	tokenURL = "https://www.strava.com/oauth/token"
)

// CallbackPort is the fixed local port registered with the API application.
const CallbackPort = 8089

// scope grants read access to all activities. Strava packs its scopes into
// a single comma-separated value.
const scope = "read,activity:read_all"

// NewConfig builds the oauth2 config for the local-callback flow.
func NewConfig(clientID, clientSecret string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  authURL,
			TokenURL: tokenURL,
		},
		RedirectURL: fmt.Sprintf("http://localhost:%d/callback", CallbackPort),
		Scopes:      []string{scope},
	}
}

// AthleteID digs the athlete identifier out of the token response extras.
// Strava attaches the athlete object alongside the token; zero means the
// response carried none.
func AthleteID(token *oauth2.Token) int64 {
	athlete, ok := token.Extra("athlete").(map[string]any)
	if !ok {
		return 0
	}
	id, ok := athlete["id"].(float64)
	if !ok {
		return 0
	}
	return int64(id)
}
