package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jmarren/asciiart"
	"github.com/jmarren/asciiart/imageutil"
)

func main() {
	imagePath := flag.String("image", "",
		"Path to the input image file (required)")
	configPath := flag.String("config", "",
		"Path to a YAML configuration file (optional)")
	width := flag.Int("width", 0,
		"Downscale the image to this width before conversion (0 = no scaling)")
	flag.Parse()

	if *imagePath == "" {
		fmt.Fprintln(os.Stderr, "Usage: asciiart -image <path> [-config <path>] [-width <pixels>]")
		os.Exit(1)
	}

	if err := run(*imagePath, *configPath, *width); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(imagePath, configPath string, width int) error {
	cfg := asciiart.DefaultConfig()
	if configPath != "" {
		loaded, err := asciiart.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	img, err := imageutil.LoadImage(imagePath)
	if err != nil {
		return err
	}
	if width > 0 && width < img.Width() {
		img = imageutil.ResizeToWidth(img, width, imageutil.InterpolationArea)
	}

	var provider asciiart.MaskProvider
	if cfg.FontPath != "" {
		masks, err := asciiart.LoadTTFMasks(cfg.FontPath, cfg.FontSize)
		if err != nil {
			return err
		}
		provider = masks
	} else {
		provider = asciiart.NewDefaultMasks()
	}

	matcher := asciiart.NewMatcher(provider, []rune(cfg.Charset)...)

	shell, err := asciiart.NewShell(img, matcher, cfg, os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	return shell.Run()
}
