// Command trainer fits the grievance classifier offline: it reads the
// labeled complaints dataset, trains the TF-IDF/naive-Bayes pair and
// persists the artifact the httpd service loads at startup.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/grievancesense/grievancesense/internal/config"
	"github.com/grievancesense/grievancesense/internal/dataset"
	"github.com/grievancesense/grievancesense/internal/logging"
	"github.com/grievancesense/grievancesense/internal/model"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	dataPath := flag.String("data", "", "training data CSV (overrides config)")
	outPath := flag.String("out", "", "artifact output path (overrides config)")
	flag.Parse()

	if err := run(*configPath, *dataPath, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "trainer: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, dataPath, outPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if dataPath == "" {
		dataPath = cfg.Model.TrainingDataPath
	}
	if outPath == "" {
		outPath = cfg.Model.ArtifactPath
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	examples, err := dataset.Load(dataPath)
	if err != nil {
		return err
	}
	log.Info("training data loaded",
		logging.String("path", dataPath),
		logging.Int("examples", len(examples)),
	)

	artifact, err := model.Train(examples, log)
	if err != nil {
		return err
	}

	if err := artifact.Save(outPath); err != nil {
		return err
	}

	log.Info("artifact persisted", logging.String("path", outPath))
	fmt.Println("Model trained and saved successfully")
	return nil
}
