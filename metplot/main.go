package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/vg"

	"github.com/atlasopen/mettrig"
)

var (
	nBins  = flag.Int("nbins", 50, "number of bins")
	metMin = flag.Float64("min", 0, "lower edge of the MET axis in GeV")
	metMax = flag.Float64("max", 500, "upper edge of the MET axis in GeV")
	title  = flag.String("title", "", "plot title")
	output = flag.String("output", "met.png", "output file")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <mini-root-files>...

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("metplot: ")
	log.SetFlags(0)

	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		log.Fatal("missing input files")
	}

	p := hplot.New()
	p.Title.Text = *title
	p.X.Label.Text = "Effective MET (GeV)"
	p.X.Tick.Marker = mettrig.PreciseTicks{N: 5}
	p.Y.Tick.Marker = mettrig.PreciseTicks{N: 5}

	for i, fname := range flag.Args() {
		hist := makeMETHist(fname)

		lineColor := color.RGBA{A: 255}
		switch i {
		case 1:
			lineColor = color.RGBA{R: 255, A: 255}
		case 2:
			lineColor = color.RGBA{B: 255, A: 255}
		case 3:
			lineColor = color.RGBA{G: 127, B: 127, A: 255}
		}

		h := hplot.NewH1D(hist)
		h.LineStyle.Color = lineColor
		if flag.NArg() == 1 {
			h.Infos.Style = hplot.HInfoSummary
		}

		p.Add(h)
		p.Legend.Add(fname, h)
	}
	p.Legend.Top = true

	if err := p.Save(6*vg.Inch, 4*vg.Inch, *output); err != nil {
		log.Fatal(err)
	}
}

func makeMETHist(fname string) *hbook.H1D {
	hist := hbook.NewH1D(*nBins, *metMin, *metMax)

	src, err := mettrig.OpenMini(fname)
	if err != nil {
		log.Fatal(err)
	}
	defer src.Close()

	for evt := range src.Events() {
		met, _ := mettrig.EffectiveMET(evt)
		hist.Fill(met, 1)
	}
	if err := src.Err(); err != nil {
		log.Fatal(err)
	}

	return hist
}
