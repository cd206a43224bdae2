package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/duskforge/voxeldungeon/pkg/dungeon"
	"github.com/duskforge/voxeldungeon/pkg/export"
)

const version = "1.0.0"

// CLI flags
var (
	configPath = flag.String("config", "", "Path to YAML configuration file (uses built-in defaults if omitted)")
	outputDir  = flag.String("output", ".", "Output directory for generated files")
	format     = flag.String("format", "json", "Export format: json, svg, or all")
	seedFlag   = flag.Uint64("seed", 0, "Override the seed from config (0 = use config seed)")
	verbose    = flag.Bool("verbose", false, "Enable verbose output")
	versionF   = flag.Bool("version", false, "Print version and exit")
	help       = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("voxeldungeon version %s\n", version)
		os.Exit(0)
	}

	if *help {
		printHelp()
		os.Exit(0)
	}

	validFormats := map[string]bool{"json": true, "svg": true, "all": true}
	if !validFormats[*format] {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q, must be one of: json, svg, all\n", *format)
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if *seedFlag != 0 {
		if *verbose {
			fmt.Printf("Overriding seed from %d to %d\n", cfg.Seed, *seedFlag)
		}
		cfg.Seed = *seedFlag
	}

	if *verbose {
		fmt.Printf("Using seed: %d\n", cfg.Seed)
		fmt.Printf("Volume: %dx%dx%d, hierarchy: %d\n", cfg.Width, cfg.Height, cfg.Depth, cfg.RoomHierarchy)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	start := time.Now()
	if *verbose {
		fmt.Println("Generating dungeon...")
	}

	result, err := dungeon.Generate(ctx, cfg)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	elapsed := time.Since(start)

	if *verbose {
		fmt.Printf("Generation completed in %v\n", elapsed)
		printStats(result)
	}

	baseName := fmt.Sprintf("dungeon_%d", cfg.Seed)

	if *format == "json" || *format == "all" {
		if err := exportJSON(result, baseName); err != nil {
			return err
		}
	}
	if *format == "svg" || *format == "all" {
		if err := exportSVG(result, cfg, baseName); err != nil {
			return err
		}
	}

	fmt.Printf("Successfully generated dungeon (seed=%d) in %v\n", cfg.Seed, elapsed)
	return nil
}

// loadConfig reads -config if set, otherwise starts from the built-in
// defaults so the tool runs with no arguments at all.
func loadConfig() (*dungeon.Config, error) {
	if *configPath == "" {
		cfg := dungeon.NewDefaultConfig()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if *verbose {
		fmt.Printf("Loading configuration from %s\n", *configPath)
	}
	return dungeon.LoadConfig(*configPath)
}

func exportJSON(result *dungeon.Result, baseName string) error {
	filename := filepath.Join(*outputDir, baseName+".json")
	if *verbose {
		fmt.Printf("Exporting JSON to %s\n", filename)
	}
	if err := export.SaveJSONToFile(result, filename); err != nil {
		return fmt.Errorf("failed to export JSON: %w", err)
	}
	if *verbose {
		info, _ := os.Stat(filename)
		fmt.Printf("  Wrote %d bytes\n", info.Size())
	}
	return nil
}

func exportSVG(result *dungeon.Result, cfg *dungeon.Config, baseName string) error {
	filename := filepath.Join(*outputDir, baseName+".svg")
	if *verbose {
		fmt.Printf("Exporting SVG to %s\n", filename)
	}

	opts := export.DefaultSVGOptions()
	opts.Title = fmt.Sprintf("Dungeon Plan View (seed=%d)", cfg.Seed)

	if err := export.SaveSVGToFile(result, filename, opts); err != nil {
		return fmt.Errorf("failed to export SVG: %w", err)
	}
	if *verbose {
		info, _ := os.Stat(filename)
		fmt.Printf("  Wrote %d bytes\n", info.Size())
	}
	return nil
}

func printStats(result *dungeon.Result) {
	fmt.Println("\nDungeon Statistics:")
	fmt.Printf("  Rooms: %d\n", len(result.Rooms))

	required, optional, routed := 0, 0, 0
	for _, c := range result.Connections {
		if c.Required {
			required++
		} else {
			optional++
		}
		if c.Routed {
			routed++
		}
	}
	fmt.Printf("  Required connections: %d\n", required)
	fmt.Printf("  Optional connections attempted: %d\n", optional)
	fmt.Printf("  Connections routed: %d\n", routed)
	fmt.Printf("  Map cells committed: %d\n", result.Map.Len())
}

// printHelp prints detailed help information
func printHelp() {
	fmt.Printf("voxeldungeon version %s\n\n", version)
	fmt.Println("A command-line tool for generating procedural 3D voxel dungeons.")
	fmt.Println("\nUsage:")
	fmt.Println("  voxeldungeon [-config <config.yaml>] [options]")
	fmt.Println("\nOptional Flags:")
	fmt.Println("  -config string")
	fmt.Println("        Path to YAML configuration file (uses built-in defaults if omitted)")
	fmt.Println("  -output string")
	fmt.Println("        Output directory for generated files (default: current directory)")
	fmt.Println("  -format string")
	fmt.Println("        Export format: json, svg, or all (default: json)")
	fmt.Println("  -seed uint")
	fmt.Println("        Override the seed from config (0 = use config seed) (default: 0)")
	fmt.Println("  -verbose")
	fmt.Println("        Enable verbose output")
	fmt.Println("  -version")
	fmt.Println("        Print version and exit")
	fmt.Println("  -help")
	fmt.Println("        Show this help message")
	fmt.Println("\nExamples:")
	fmt.Println("  # Generate with built-in defaults")
	fmt.Println("  voxeldungeon")
	fmt.Println("\n  # Generate with custom seed and all export formats")
	fmt.Println("  voxeldungeon -config dungeon.yaml -seed 12345 -format all -output ./out")
	fmt.Println("\n  # Generate SVG visualization with verbose output")
	fmt.Println("  voxeldungeon -config dungeon.yaml -format svg -verbose")
	fmt.Println("\nConfiguration File:")
	fmt.Println("  The YAML configuration file specifies dungeon parameters including:")
	fmt.Println("  - width, height, depth (voxel extent)")
	fmt.Println("  - seed (for deterministic generation)")
	fmt.Println("  - roomHierarchy (vertical tier count)")
	fmt.Println("  - roomWidthRange, roomHeightRange, roomDepthRange")
	fmt.Println("  - roomMarginX, roomMarginY, roomMarginZ")
	fmt.Println("  - passageHeight, marginForBounds")
	fmt.Println("  - optionalConnectionProbability")
	fmt.Println("\n  See the project documentation for the detailed configuration schema.")
}
