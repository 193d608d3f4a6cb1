package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/flanksource/commons/logger"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"geolabel/internal/callout"
	"geolabel/internal/canvas"
	"geolabel/internal/config"
	"geolabel/internal/export"
	"geolabel/internal/geom"
	"geolabel/internal/mapview"
)

type renderOptions struct {
	width, height int
	fontSize      float64
	basemap       string
	svgPath       string
	pngPath       string
}

func newRenderCommand(configFile *string) *cobra.Command {
	o := renderOptions{width: 1024, height: 768, fontSize: export.DefaultFontSize}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Lay out the configured labels and write them as SVG and/or PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFile, config.Default())
			if err != nil {
				return err
			}
			return render(cfg, o)
		},
	}
	cmd.Flags().IntVar(&o.width, "width", o.width, "Image width in pixels")
	cmd.Flags().IntVar(&o.height, "height", o.height, "Image height in pixels")
	cmd.Flags().Float64Var(&o.fontSize, "font-size", o.fontSize, "Label font size in pixels")
	cmd.Flags().StringVar(&o.basemap, "basemap", "", "Base map file, overrides the config")
	cmd.Flags().StringVar(&o.svgPath, "svg", "", "Write an SVG image to this path")
	cmd.Flags().StringVar(&o.pngPath, "png", "", "Write a PNG image to this path")
	return cmd
}

// render lays the labels out headlessly, measuring text with a real font.
func render(cfg config.Config, o renderOptions) error {
	if o.svgPath == "" && o.pngPath == "" {
		return errors.New("nothing to write: pass --svg and/or --png")
	}
	if o.width <= 0 || o.height <= 0 {
		return fmt.Errorf("invalid size %dx%d", o.width, o.height)
	}
	face, err := export.NewFace(o.fontSize)
	if err != nil {
		return err
	}
	defer face.Close()

	view := mapview.New()
	surface := canvas.New(export.FaceMeasure(face), export.LineHeight(face))
	labels := callout.NewManager(view, surface)
	defer labels.Close()

	var data geom.Data
	if path := lo.Ternary(o.basemap != "", o.basemap, cfg.Basemap); path != "" {
		if data, err = geom.Load(path); err != nil {
			return fmt.Errorf("failed to load base map: %w", err)
		}
		view.SetBBox(data.BBox)
	}
	view.Resize(float64(o.width), float64(o.height))

	items := lo.Map(cfg.Seeds(), func(opts callout.Options, _ int) any { return callout.New(opts) })
	if cmd := labels.Add(items...); cmd != nil {
		return errors.New("map view has no size")
	}
	logger.Infof("laid out %d labels on %dx%d", len(labels.Labels()), o.width, o.height)

	scene := export.Scene{
		Width:      o.width,
		Height:     o.height,
		Basemap:    data,
		Projection: view,
		Shapes:     surface.Shapes(),
		FontSize:   o.fontSize,
	}
	if o.svgPath != "" {
		if err := writeFile(o.svgPath, func(w io.Writer) error { return export.SVG(w, scene) }); err != nil {
			return err
		}
	}
	if o.pngPath != "" {
		if err := writeFile(o.pngPath, func(w io.Writer) error { return export.PNG(w, scene, face) }); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Infof("wrote %s", path)
	return nil
}
