package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/menta2k/smart-cropper/internal/config"
	"github.com/menta2k/smart-cropper/internal/utils"
	"github.com/menta2k/smart-cropper/pkg/analyzer"
	"github.com/menta2k/smart-cropper/pkg/cropper"
	"github.com/menta2k/smart-cropper/pkg/processing"
	"github.com/menta2k/smart-cropper/pkg/types"
)

// Default target sizes for cropping
const defaultTargetSizes = "1200x675,1200x630,600x400,400x250,200x200"

type app struct {
	cfg       *config.Config
	processor *processing.Processor
	cropper   *cropper.SmartCropper
	analyzer  *analyzer.ImageAnalyzer
	mode      cropper.Mode
	sizes     []types.Size
	debug     bool
	report    bool
}

func main() {
	var in, outDir, configPath, modeName, sizesArg string
	var steps int
	var vertical, paletteName, ext string
	var smoothing float64
	var quality int
	var lossless, dither, upscale, debug, report, verbose bool

	flag.StringVar(&in, "in", "", "input image path, URL or directory (jpg/png/webp/gif/bmp/tiff)")
	flag.StringVar(&outDir, "out", "", "output directory (default from config: ./output)")
	flag.StringVar(&configPath, "config", "", "config file (default "+config.GetConfigPath()+" when present)")
	flag.StringVar(&modeName, "mode", "crop", "crop mode: crop|zoom|scale")
	flag.StringVar(&sizesArg, "sizes", defaultTargetSizes, "comma separated target sizes, e.g. 200x200,640x360")

	flag.IntVar(&steps, "steps", 0, "trim iterations per side (default from config: 10)")
	flag.StringVar(&vertical, "vertical", "", "vertical trim mode: converge|legacy")
	flag.StringVar(&paletteName, "palette", "", "quantization palette: plan9|websafe")
	flag.BoolVar(&dither, "dither", false, "dither when quantizing")
	flag.Float64Var(&smoothing, "smooth", 0, "gaussian blur radius applied before quantizing (0=off)")
	flag.BoolVar(&upscale, "upscale", false, "allow zoom and scale targets larger than the source")

	flag.StringVar(&ext, "ext", "", "output format for crops: jpg|png|webp")
	flag.IntVar(&quality, "quality", 0, "JPEG/WebP output quality for crops (1-100)")
	flag.BoolVar(&lossless, "lossless", false, "WebP output lossless mode for crops")

	flag.BoolVar(&debug, "debug", false, "create debug overlay images")
	flag.BoolVar(&report, "report", false, "write an entropy report (JSON) per input")
	flag.BoolVar(&verbose, "v", false, "log every trim decision")

	flag.Parse()
	if in == "" {
		log.Fatalf("usage: %s -in input.jpg|URL|dir [-out outdir] [-mode crop|zoom|scale] [-sizes 200x200,640x360] [-ext jpg|png|webp] [-debug]", filepath.Base(os.Args[0]))
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}

	// explicitly set flags override the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out":
			cfg.Output.OutputDir = outDir
		case "steps":
			cfg.Cropper.Steps = steps
		case "vertical":
			cfg.Cropper.VerticalTrim = vertical
		case "palette":
			cfg.Cropper.Palette = paletteName
		case "dither":
			cfg.Cropper.Dither = dither
		case "smooth":
			cfg.Cropper.Smoothing = smoothing
		case "upscale":
			cfg.Cropper.AllowUpscaling = upscale
		case "ext":
			cfg.Output.DefaultFormat = ext
		case "quality":
			cfg.Output.Quality = quality
		case "lossless":
			cfg.Output.Lossless = lossless
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	mode, err := cropper.ParseMode(modeName)
	if err != nil {
		log.Fatal(err)
	}
	sizes, err := types.ParseSizes(sizesArg)
	if err != nil {
		log.Fatal(err)
	}
	if len(sizes) == 0 {
		log.Fatal("no target sizes given")
	}

	cropConfig, err := cfg.CropConfig()
	if err != nil {
		log.Fatal(err)
	}
	if verbose {
		cropConfig.Log = log.New(os.Stderr, "smartcrop: ", log.LstdFlags)
	}
	smartCropper := cropper.NewWithConfig(cropConfig)

	a := &app{
		cfg:       cfg,
		processor: processing.NewProcessor(),
		cropper:   smartCropper,
		analyzer:  analyzer.NewWithConfig(cfg.AnalyzerConfig(), smartCropper),
		mode:      mode,
		sizes:     sizes,
		debug:     debug,
		report:    report,
	}

	if err := utils.EnsureDir(cfg.Output.OutputDir); err != nil {
		log.Fatal(err)
	}

	inputs := []string{in}
	if !utils.IsURL(in) && utils.DirExists(in) {
		inputs, err = utils.ListImageFiles(in)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("found %d images in %s", len(inputs), in)
	}

	failed := 0
	for _, input := range inputs {
		if err := a.process(context.Background(), input); err != nil {
			log.Printf("%s: %v", input, err)
			failed++
		}
	}
	if failed > 0 {
		log.Fatalf("%d of %d inputs failed", failed, len(inputs))
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	if def := config.GetConfigPath(); utils.FileExists(def) {
		return config.LoadFromFile(def)
	}
	return config.Default(), nil
}

func (a *app) process(ctx context.Context, input string) error {
	if !utils.IsURL(input) && !a.analyzer.IsFormatSupported(input) {
		return fmt.Errorf("unsupported format: %s", utils.GetFileExtension(input))
	}

	img, err := a.processor.LoadImageSmart(ctx, input)
	if err != nil {
		return err
	}
	if err := a.analyzer.ValidateImage(img); err != nil {
		return err
	}

	info := a.analyzer.GetImageInfo(img)
	log.Printf("%s: %dx%d entropy=%.3f", input, info.Width, info.Height, info.Entropy)

	out := a.cfg.Output
	for _, size := range a.sizes {
		result, err := a.cropper.Apply(img, a.mode, size)
		if err != nil {
			log.Printf("crop %s failed: %v", size, err)
			continue
		}
		log.Printf("%s %s: rect=%v gravity=%s trims=%d", a.mode, size, result.Rect, result.Gravity, len(result.Steps))

		cropPath := utils.GenerateOutputFilename(input, out.OutputDir, out.Prefix, out.Suffix, size, strings.ToLower(out.DefaultFormat))
		if err := a.processor.SaveImage(result.Image, cropPath, out.DefaultFormat, out.Quality, out.Lossless); err != nil {
			log.Printf("save %s failed: %v", cropPath, err)
		} else {
			log.Printf("wrote %s", cropPath)
		}

		if a.debug {
			a.writeDebug(img, input, result)
		}
	}

	if a.report {
		return a.writeReport(img, input)
	}
	return nil
}

func (a *app) writeDebug(img image.Image, input string, result cropper.CropResult) {
	out := a.cfg.Output
	overlay := a.processor.CreateDebugOverlay(img, result.Rect, result.Steps)
	dbgPath := utils.GenerateOutputFilename(input, out.OutputDir, out.Prefix, "_debug", result.Size, "png")
	if err := a.processor.SaveImage(overlay, dbgPath, "png", 0, false); err != nil {
		log.Printf("debug save %s failed: %v", dbgPath, err)
	} else {
		log.Printf("wrote %s", dbgPath)
	}
}

func (a *app) writeReport(img image.Image, input string) error {
	report, err := a.analyzer.Analyze(img, a.sizes)
	if err != nil {
		return err
	}
	js, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	out := a.cfg.Output
	path := utils.GenerateOutputFilename(input, out.OutputDir, out.Prefix, "_report", types.Size{}, "json")
	if err := os.WriteFile(path, js, 0o644); err != nil {
		return err
	}
	log.Printf("wrote %s", path)
	return nil
}
