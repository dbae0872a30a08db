package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"
	"github.com/de-tools/action-center/pkg/models/api"
	storemodels "github.com/de-tools/action-center/pkg/models/store"
	"github.com/de-tools/action-center/pkg/services/actioncenter"
	"github.com/de-tools/action-center/pkg/services/config"
	"github.com/de-tools/action-center/pkg/services/detectors/aws"
	"github.com/de-tools/action-center/pkg/services/detectors/azure"
	"github.com/de-tools/action-center/pkg/services/signals"
	"github.com/de-tools/action-center/pkg/store/duckdb"
	signalstore "github.com/de-tools/action-center/pkg/store/duckdb/signals"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath   string
	inputPath string
	pretty    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "action-center",
		Short: "Build and capture cost optimization models",
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "action-center.yaml",
		"Path to the service config file")

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Build a model from a snapshot file and print it as JSON",
		RunE:  runBuild,
	}
	buildCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Path to a snapshot JSON file")
	buildCmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the JSON output")
	_ = buildCmd.MarkFlagRequired("input")

	captureCmd := &cobra.Command{
		Use:   "capture",
		Short: "Run the cloud detectors and persist a signal snapshot",
		RunE:  runCapture,
	}

	rootCmd.AddCommand(buildCmd, captureCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runBuild(cmd *cobra.Command, _ []string) error {
	set, err := signals.NewFileProvider(inputPath).Collect(cmd.Context())
	if err != nil {
		return err
	}

	engine := actioncenter.NewEngine(actioncenter.DefaultTables())
	model := engine.Build(set, time.Now())

	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(model)
}

func runCapture(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	awsCfg, err := aws.LoadConfig(ctx, cfg.AWSProfile)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	set, err := aws.NewCollector(*awsCfg).Collect(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect AWS signals: %w", err)
	}

	azureCfg, err := azure.LoadConfig(cfg.AzureProfile)
	if err != nil {
		logger.Warn().Err(err).Msg("skipping commitment detection, Azure config unavailable")
	} else {
		factory, err := armcostmanagement.NewClientFactory(azureCfg.Credentials, nil)
		if err != nil {
			return fmt.Errorf("failed to create cost management client: %w", err)
		}
		gap, err := azure.NewCommitmentDetector(factory, azureCfg.SubscriptionID).DetectGap(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("commitment detection failed")
		} else {
			set.Commitment = gap
		}
	}

	payload, err := json.Marshal(api.FromDomain(set))
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: cfg.DBPath,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}

	store, err := signalstore.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create signal snapshot store: %w", err)
	}

	capturedAt := time.Now().UTC()
	snapshot := storemodels.SignalSnapshot{
		ID:         fmt.Sprintf("capture-%d", capturedAt.UnixNano()),
		CapturedAt: capturedAt,
		Payload:    payload,
	}
	if err := store.Add(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}

	logger.Info().
		Str("snapshot_id", snapshot.ID).
		Int("opportunities", len(set.Opportunities)).
		Int("idle_resources", len(set.IdleResources)).
		Int("rightsizing", len(set.RightSizing)).
		Msg("signal snapshot captured")

	return nil
}
