// Title card CLI - episode title card rendering tool
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joeblew999/plat-titlecard/pkg/card"
	"github.com/joeblew999/plat-titlecard/pkg/cardtype"
	"github.com/joeblew999/plat-titlecard/pkg/config"
	"github.com/joeblew999/plat-titlecard/pkg/magick"
	"github.com/joeblew999/plat-titlecard/pkg/render"
	"github.com/joeblew999/plat-titlecard/pkg/typeface"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "render":
		renderCmd(os.Args[2:])
	case "verify":
		verifyCmd(os.Args[2:])
	case "list":
		listCmd(os.Args[2:])
	case "install":
		installCmd(os.Args[2:])
	case "init":
		initCmd(os.Args[2:])
	case "preview":
		previewCmd(os.Args[2:])
	case "version":
		fmt.Println("plat-titlecard v0.1.0")
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`plat-titlecard - Episode Title Card CLI

Usage:
  titlecard <command> [options]

Commands:
  render     Render an episode title card with ImageMagick
  verify     Check that a card type's layer fonts share glyph metrics
  list       List installed card types
  install    Install a card type package from a directory
  init       Write the built-in Timeless card type scaffold
  preview    Render an in-process typeface preview to a PNG
  version    Show version
  help       Show this help

Examples:
  titlecard render -type=timeless -source=s1e1.jpg -out=card.jpg -series=Timeless -season=1 -episode=1 -title=Pilot
  titlecard verify -type=timeless
  titlecard list
  titlecard install -from=./my-style -force
  titlecard preview -type=timeless -out=preview.png

Environment Variables:
  DATA_PATH         Base data directory (default: ./.data)
  CARD_TYPE_PATH    Card type directory (default: $DATA_PATH/card_types)
  CARD_OUTPUT_PATH  Rendered card directory (default: $DATA_PATH/cards)
  SOURCE_PATH       Episode source image directory (default: $DATA_PATH/source)`)
}

func loadRegistry(dir string) *cardtype.Registry {
	registry := cardtype.NewRegistry(dir, cardtype.WithFontVerifier(typeface.VerifyCompatible))
	if _, err := registry.Discover(); err != nil {
		fmt.Printf("Error discovering card types: %v\n", err)
		os.Exit(1)
	}
	return registry
}

func loadStyle(dir, id string) *cardtype.Style {
	style, ok := loadRegistry(dir).Get(id)
	if !ok {
		fmt.Printf("Error: card type %q not installed in %s\n", id, dir)
		os.Exit(1)
	}
	return style
}

func renderCmd(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	styleID := fs.String("type", "", "Card type identifier")
	dir := fs.String("dir", config.GetCardTypePath(), "Card type directory")
	source := fs.String("source", "", "Episode source image")
	out := fs.String("out", "", "Output card path (default: content-addressed name in the card output directory)")
	series := fs.String("series", "", "Series name")
	season := fs.Int("season", 1, "Season number, 0 for specials")
	episode := fs.Int("episode", 1, "Episode number")
	title := fs.String("title", "", "Episode title")
	seasonText := fs.String("season-text", "", "Season label override")
	episodeText := fs.String("episode-text", "", "Episode label override")
	fontColor := fs.String("font-color", "", "Title color override for the base layer")
	fontSize := fs.Float64("font-size", 0, "Title size scalar (1.0 = card type default)")
	blur := fs.Bool("blur", false, "Blur the source image")
	grayscale := fs.Bool("grayscale", false, "Render in grayscale")
	fs.Parse(args)

	if *styleID == "" || *source == "" || *title == "" {
		fmt.Println("Error: -type, -source and -title are required")
		os.Exit(1)
	}

	registry := loadRegistry(*dir)
	if !registry.Has(*styleID) {
		fmt.Printf("Error: card type %q not installed in %s\n", *styleID, *dir)
		os.Exit(1)
	}

	runner := magick.NewRunner()
	if !runner.Available() {
		fmt.Printf("Error: ImageMagick binary %q not found\n", runner.Binary())
		os.Exit(1)
	}

	// Flag paths are relative to the working directory, not the engine
	// source/output trees.
	src, err := filepath.Abs(*source)
	if err != nil {
		fmt.Printf("Error resolving source path: %v\n", err)
		os.Exit(1)
	}
	outPath := *out
	if outPath != "" {
		if outPath, err = filepath.Abs(outPath); err != nil {
			fmt.Printf("Error resolving output path: %v\n", err)
			os.Exit(1)
		}
	}

	c := card.Card{
		SourcePath:  src,
		OutputPath:  outPath,
		Title:       *title,
		Series:      *series,
		Season:      *season,
		Episode:     *episode,
		SeasonText:  *seasonText,
		EpisodeText: *episodeText,
		FontColor:   *fontColor,
		FontSize:    *fontSize,
		Blur:        *blur,
		Grayscale:   *grayscale,
	}

	engine := render.NewEngine(nil, registry, card.NewComposer(card.WithMeasurer(runner)), runner, render.Dirs{}, render.DefaultConfig())
	rendered, err := engine.RenderNow(context.Background(), *styleID, c)
	if err != nil {
		fmt.Printf("Error rendering card: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Card rendered to %s\n", rendered)
}

func verifyCmd(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	styleID := fs.String("type", "", "Card type identifier")
	dir := fs.String("dir", config.GetCardTypePath(), "Card type directory")
	fs.Parse(args)

	if *styleID == "" {
		fmt.Println("Error: -type is required")
		os.Exit(1)
	}

	// Load the package directly instead of via discovery, so manifest
	// problems are reported rather than silently skipped.
	pkgDir := filepath.Join(*dir, *styleID)
	m, err := cardtype.LoadManifest(filepath.Join(pkgDir, cardtype.ManifestFilename))
	if err != nil {
		fmt.Printf("⚠ Manifest invalid: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Manifest valid: %s (%s)\n", m.Name, m.Identifier)

	style := &cardtype.Style{Manifest: *m, Dir: pkgDir}
	missing := false
	for _, l := range cardtype.Layers() {
		if _, err := os.Stat(style.FontPath(l)); err != nil {
			fmt.Printf("⚠ Missing %s layer font: %s\n", l, m.Fonts.For(l))
			missing = true
		}
	}
	if missing {
		os.Exit(1)
	}
	fmt.Println("✓ All layer fonts present")

	warnings, err := typeface.VerifyCompatible(style.FontPaths())
	if err != nil {
		fmt.Printf("Error verifying fonts: %v\n", err)
		os.Exit(1)
	}

	if len(warnings) == 0 {
		fmt.Println("✓ Layer fonts share identical glyph metrics")
	} else {
		fmt.Printf("⚠ Found %d metric difference(s):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("  • %s\n", w)
		}
		os.Exit(1)
	}
}

func listCmd(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	dir := fs.String("dir", config.GetCardTypePath(), "Card type directory")
	fs.Parse(args)

	registry := cardtype.NewRegistry(*dir, cardtype.WithFontVerifier(typeface.VerifyCompatible))
	styles, err := registry.Discover()
	if err != nil {
		fmt.Printf("Error discovering card types: %v\n", err)
		os.Exit(1)
	}

	if len(styles) == 0 {
		fmt.Printf("No card types installed in %s\n", *dir)
		return
	}

	fmt.Printf("Card types in %s:\n", *dir)
	for _, s := range styles {
		marker := "✓"
		if len(s.FontWarnings) > 0 {
			marker = "⚠"
		}
		fmt.Printf("  %s %s - %s\n", marker, s.Identifier, s.Name)
	}
}

func installCmd(args []string) {
	fs := flag.NewFlagSet("install", flag.ExitOnError)
	from := fs.String("from", "", "Source directory of the card type package")
	dir := fs.String("dir", config.GetCardTypePath(), "Card type directory")
	force := fs.Bool("force", false, "Overwrite an existing installation")
	fs.Parse(args)

	if *from == "" {
		fmt.Println("Error: -from is required")
		os.Exit(1)
	}

	style, err := cardtype.Install(*from, *dir, *force)
	if err != nil {
		fmt.Printf("Error installing card type: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Installed %s to %s\n", style.Identifier, style.Dir)
}

func initCmd(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	dir := fs.String("dir", config.GetCardTypePath(), "Card type directory")
	fs.Parse(args)

	pkgDir, err := cardtype.Scaffold(*dir)
	if err != nil {
		fmt.Printf("Error scaffolding card type: %v\n", err)
		os.Exit(1)
	}

	m := cardtype.Timeless()
	fmt.Printf("✓ Scaffolded %s in %s\n", m.Identifier, pkgDir)
	fmt.Println("Add the layer fonts before rendering:")
	fmt.Printf("  • %s\n", m.Fonts.Base)
	fmt.Printf("  • %s\n", m.Fonts.Infill)
	fmt.Printf("  • %s\n", m.Fonts.Gears)
}

func previewCmd(args []string) {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	styleID := fs.String("type", "", "Card type identifier")
	dir := fs.String("dir", config.GetCardTypePath(), "Card type directory")
	out := fs.String("out", "preview.png", "Output PNG path")
	text := fs.String("text", "", "Sample text (default: card type identifier)")
	fs.Parse(args)

	if *styleID == "" {
		fmt.Println("Error: -type is required")
		os.Exit(1)
	}

	style := loadStyle(*dir, *styleID)

	img, err := typeface.RenderPreview(style, typeface.PreviewOptions{Text: *text})
	if err != nil {
		fmt.Printf("Error rendering preview: %v\n", err)
		os.Exit(1)
	}

	png, err := typeface.EncodePNG(img)
	if err != nil {
		fmt.Printf("Error encoding preview: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, png, 0644); err != nil {
		fmt.Printf("Error writing output: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Preview written to %s (%d bytes)\n", *out, len(png))
}
