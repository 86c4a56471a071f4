package config_test

import (
	"fmt"
	"log"

	"github.com/ajitpratap0/linescan/pkg/config"
)

// ExampleNewBaseConfig demonstrates the defaults.
func ExampleNewBaseConfig() {
	cfg := config.NewBaseConfig("default")

	fmt.Printf("Chunk Size: %d\n", cfg.Performance.ChunkSize)
	fmt.Printf("Placeholder: %s\n", cfg.Grid.Placeholder)
	fmt.Printf("Gear Symbol: %s\n", cfg.Grid.GearSymbol)
	fmt.Printf("Separator: %s\n", cfg.Records.Separator)
	fmt.Printf("Cubes: %d red, %d green, %d blue\n", cfg.Cubes.Red, cfg.Cubes.Green, cfg.Cubes.Blue)

	// Output:
	// Chunk Size: 16
	// Placeholder: .
	// Gear Symbol: *
	// Separator: |
	// Cubes: 12 red, 13 green, 14 blue
}

// ExampleBaseConfig_Validate shows how to validate a configuration
// before using it.
func ExampleBaseConfig_Validate() {
	cfg := config.NewBaseConfig("capacity-checked")
	cfg.Performance.Workers = 8
	cfg.Records.WinningCapacity = 10
	cfg.Records.CandidateCapacity = 25

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	fmt.Println("Configuration is valid!")

	cfg.Grid.GearSymbol = "**"
	fmt.Println(cfg.Validate())

	// Output:
	// Configuration is valid!
	// gear_symbol must be a single byte, got "**"
}
