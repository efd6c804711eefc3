package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/oauth2"

	"coach/internal/auth"
	"coach/internal/config"
	"coach/internal/intent"
	"coach/internal/service"
	"coach/internal/store"
	"coach/internal/strava"
)

const usage = `coach tracks your training and tells you what it means.

Usage:
  coach <command> [flags]

Commands:
  setup      write an example config file to edit
  auth       connect your Strava account
  sync       pull new activities from Strava
  import     load a health export file (-file)
  classify   assign heuristic intents to unlabeled workouts
  train      fit the intent model to current labels and re-label
  label      set one workout's intent by hand (-workout, -intent)
  readiness  rate readiness for every training intent
  trends     analyze performance over time
`

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Print(usage)
		return nil
	}
	cmd, rest := args[0], args[1:]

	if cmd == "setup" {
		return runSetup()
	}

	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		fmt.Println("No config file found. Run `coach setup` to create one.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		fmt.Printf("Config validation failed: %v\n\n", err)
		fmt.Printf("Please edit the config file at:\n  %s/config.json\n", configDir)
		return nil
	}

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if cmd == "auth" {
		return runAuth(ctx, db, cfg)
	}

	analysis := service.NewAnalysisService(db, &intent.NaiveBayesTrainer{}, intent.NewModelCache(), cfg.Analysis)

	switch cmd {
	case "sync":
		return runSync(ctx, db, cfg)

	case "import":
		fs := flag.NewFlagSet("import", flag.ExitOnError)
		file := fs.String("file", "", "path to a health export JSON file")
		fs.Parse(rest)
		if *file == "" {
			return errors.New("import: -file is required")
		}
		result, err := analysis.ImportFile(*file)
		if err != nil {
			return err
		}
		fmt.Print(service.FormatImportResult(result))
		return nil

	case "classify":
		result, err := analysis.Classify()
		if err != nil {
			return err
		}
		fmt.Print(service.FormatClassifyResult(result))
		return nil

	case "train":
		result, err := analysis.Train()
		var insufficient *intent.InsufficientDataError
		if errors.As(err, &insufficient) {
			fmt.Printf("%v.\nLabel workouts with `coach label` or run `coach classify` first.\n", err)
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Print(service.FormatTrainResult(result))
		return nil

	case "label":
		fs := flag.NewFlagSet("label", flag.ExitOnError)
		workout := fs.String("workout", "", "workout ID")
		intentName := fs.String("intent", "", "one of race, tempo, intervals, easy, long, casualWalk, strength, other")
		fs.Parse(rest)
		if *workout == "" || *intentName == "" {
			return errors.New("label: -workout and -intent are required")
		}
		if err := analysis.Label(*workout, *intentName); err != nil {
			return err
		}
		fmt.Printf("Labeled %s as %s.\n", *workout, *intentName)
		return nil

	case "readiness":
		assessment, err := analysis.Readiness()
		if err != nil {
			return err
		}
		fmt.Print(service.FormatReadiness(assessment))
		return nil

	case "trends":
		result, err := analysis.Trends()
		if err != nil {
			return err
		}
		fmt.Print(service.FormatTrends(result))
		return nil

	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runSetup() error {
	if err := config.CreateExample(); err != nil {
		return fmt.Errorf("creating example config: %w", err)
	}
	configDir, _ := config.GetConfigDir()
	fmt.Printf("Edit the config file at:\n  %s/config.json\n\n", configDir)
	fmt.Println("You need to add your Strava API credentials.")
	fmt.Println("Get them from: https://www.strava.com/settings/api")
	return nil
}

func runAuth(ctx context.Context, db *store.DB, cfg *config.Config) error {
	oauthCfg := auth.NewConfig(cfg.Strava.ClientID, cfg.Strava.ClientSecret)
	token, err := auth.Authenticate(ctx, oauthCfg)
	if err != nil {
		return err
	}

	stored := &store.Auth{
		AthleteID:    auth.AthleteID(token),
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry,
	}
	if err := db.SaveAuth(stored); err != nil {
		return fmt.Errorf("saving tokens: %w", err)
	}

	fmt.Println("Connected to Strava. Run `coach sync` to pull your activities.")
	return nil
}

func runSync(ctx context.Context, db *store.DB, cfg *config.Config) error {
	client, err := apiClient(db, cfg)
	if errors.Is(err, store.ErrNoAuth) {
		fmt.Println("Not connected to Strava yet. Run `coach auth` first.")
		return nil
	}
	if err != nil {
		return err
	}

	result, err := service.NewSyncService(client, db).SyncAll(ctx)
	if err != nil {
		return err
	}
	fmt.Print(service.FormatSyncResult(result))

	short, daily := client.RateLimitStatus()
	fmt.Printf("API requests left: %d this window, %d today.\n", short, daily)
	return nil
}

// apiClient builds a Strava client around the stored tokens, refreshing
// and re-persisting them as needed.
func apiClient(db *store.DB, cfg *config.Config) (*strava.Client, error) {
	stored, err := db.GetAuth()
	if err != nil {
		return nil, err
	}

	oauthCfg := auth.NewConfig(cfg.Strava.ClientID, cfg.Strava.ClientSecret)
	token := &oauth2.Token{
		AccessToken:  stored.AccessToken,
		RefreshToken: stored.RefreshToken,
		Expiry:       stored.ExpiresAt,
	}
	source := auth.NewSavingTokenSource(oauthCfg, token, func(t *oauth2.Token) error {
		return db.UpdateTokens(t.AccessToken, t.RefreshToken, t.Expiry)
	})
	return strava.NewClient(source), nil
}
