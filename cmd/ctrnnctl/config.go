package main

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

// experimentConfig holds the file-backed defaults for the random, mutate, and
// simulate commands. Command-line flags override individual values.
type experimentConfig struct {
	Genome     genomeConfig
	Mutation   mutationConfig
	Simulation simulationConfig
}

type genomeConfig struct {
	Neurons int   `ini:"neurons"`
	Seed    int64 `ini:"seed"`
}

type mutationConfig struct {
	StdDev float64 `ini:"std_dev"`
}

type simulationConfig struct {
	Steps  int       `ini:"steps"`
	Inputs []float64 `ini:"inputs" delim:" "`
}

func loadExperimentConfig(path string) (experimentConfig, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment: true,
	}, path)
	if err != nil {
		return experimentConfig{}, fmt.Errorf("load config %s: %w", path, err)
	}

	var out experimentConfig
	if err := cfg.Section("genome").MapTo(&out.Genome); err != nil {
		return experimentConfig{}, fmt.Errorf("map [genome] section: %w", err)
	}
	if err := cfg.Section("mutation").MapTo(&out.Mutation); err != nil {
		return experimentConfig{}, fmt.Errorf("map [mutation] section: %w", err)
	}
	if err := cfg.Section("simulation").MapTo(&out.Simulation); err != nil {
		return experimentConfig{}, fmt.Errorf("map [simulation] section: %w", err)
	}
	return out, nil
}

func loadOptionalConfig(path string) (experimentConfig, error) {
	if path == "" {
		return experimentConfig{}, nil
	}
	return loadExperimentConfig(path)
}

func parseInputs(raw string) ([]float64, error) {
	fields := strings.Fields(raw)
	out := make([]float64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("parse input %q: %w", field, err)
		}
		out[i] = v
	}
	return out, nil
}
