package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"sort"

	"github.com/pkg/profile"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/atlasopen/mettrig"
)

var (
	signalFile = flag.String("signal", "", "simulated-signal ROOT file (mini tree)")
	dataFile   = flag.String("data", "", "background (real-data) ROOT file (mini tree)")
	xsec       = flag.Float64("xsec", 0, "signal cross-section in fb (overrides config)")
	maxEvents  = flag.Int64("maxevents", 0, "cap on events per pass (0: use config)")
	prefix     = flag.String("prefix", "trig", "output file prefix")
	doProfile  = flag.Bool("profile", false, "enable CPU profiling")
	metCuts    mettrig.FloatListFlag
)

func init() {
	flag.Var(&metCuts, "metcut", "MET threshold in GeV (repeatable for a scan)")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] -signal <file> -data <file>

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("trigstudy: ")
	log.SetFlags(0)

	flag.Usage = printUsage
	flag.Parse()
	if *signalFile == "" || *dataFile == "" {
		printUsage()
		log.Fatal("missing input files")
	}

	if *doProfile {
		defer profile.Start().Stop()
	}

	cfg, err := mettrig.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	if *xsec != 0 {
		cfg.SignalCrossSectionFB = *xsec
	}
	if cfg.SignalCrossSectionFB <= 0 {
		log.Fatal("signal cross-section not set (use -xsec or signal_cross_section_fb)")
	}
	if *maxEvents != 0 {
		cfg.MaxEvents = *maxEvents
	}
	thresholds := metCuts.Values
	if len(thresholds) == 0 {
		thresholds = []float64{cfg.METThreshold}
	}
	sort.Float64s(thresholds)

	sig, err := mettrig.OpenMini(*signalFile)
	if err != nil {
		log.Fatal(err)
	}
	defer sig.Close()
	bkg, err := mettrig.OpenMini(*dataFile)
	if err != nil {
		log.Fatal(err)
	}
	defer bkg.Close()
	log.Printf("signal:     %s (%d events)", *signalFile, sig.Entries())
	log.Printf("background: %s (%d events)", *dataFile, bkg.Entries())

	sigHists := mettrig.TriggerHists()
	bkgHists := mettrig.TriggerHists()

	scan := make(plotter.XYs, 0, len(thresholds))
	for i, cut := range thresholds {
		sel := &mettrig.Selector{METThreshold: cut}

		sigRes, err := runPass(sel, sig, sigHists, cfg.MaxEvents)
		if err != nil {
			log.Fatal(err)
		}
		bkgRes, err := runPass(sel, bkg, bkgHists, cfg.MaxEvents)
		if err != nil {
			log.Fatal(err)
		}

		report, err := mettrig.Summarize(sigRes, bkgRes, cfg)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("MET > %g GeV (signal %d/%d, background %d/%d)\n",
			cut, sigRes.Passed, sigRes.Processed, bkgRes.Passed, bkgRes.Processed)
		fmt.Printf("  signal yield:     %.1f\n", report.SignalYield)
		fmt.Printf("  background yield: %.1f\n", report.BackgroundYield)
		fmt.Printf("  significance:     %.3f\n", report.Significance)
		fmt.Printf("  rate reduction:   %.4f (affordable: %v)\n", report.RateReduction, report.Affordable)

		scan = append(scan, plotter.XY{X: cut, Y: report.Significance})

		if i == 0 {
			savePlots(sigHists, bkgHists, *prefix)
		}
	}

	if len(scan) > 1 {
		saveScan(scan, *prefix)
	}
}

func runPass(sel *mettrig.Selector, src *mettrig.Source, hists *mettrig.HistSet, maxEvents int64) (mettrig.PassResult, error) {
	res, err := sel.RunPass(src.Events(), hists, maxEvents)
	if err != nil {
		return res, err
	}
	if err := src.Err(); err != nil {
		return res, err
	}
	res.Total = src.Entries()
	return res, nil
}

var axisLabels = map[string]string{
	"met_et":   "Effective MET (GeV)",
	"cutflow":  "Cut",
	"jet_n":    "Jet multiplicity",
	"jet0_pt":  "Leading jet pT (GeV)",
	"jet0_eta": "Leading jet eta",
	"jet1_pt":  "Sub-leading jet pT (GeV)",
	"jet1_eta": "Sub-leading jet eta",
}

func savePlots(sig, bkg *mettrig.HistSet, prefix string) {
	for _, name := range sig.Names() {
		p := hplot.New()
		p.X.Label.Text = axisLabels[name]
		p.X.Tick.Marker = mettrig.PreciseTicks{N: 5}
		p.Y.Tick.Marker = mettrig.PreciseTicks{N: 5}

		hs := hplot.NewH1D(sig.Hist(name))
		hs.LineStyle.Color = color.RGBA{R: 255, A: 255}
		hb := hplot.NewH1D(bkg.Hist(name))
		hb.LineStyle.Color = color.RGBA{B: 255, A: 255}
		p.Add(hs, hb)
		p.Legend.Add("signal", hs)
		p.Legend.Add("background", hb)
		p.Legend.Top = true

		if err := p.Save(6*vg.Inch, 4*vg.Inch, prefix+"_"+name+".png"); err != nil {
			log.Fatal(err)
		}
	}
}

func saveScan(pts plotter.XYs, prefix string) {
	p := hplot.New()
	p.X.Label.Text = "MET threshold (GeV)"
	p.Y.Label.Text = "Significance"
	p.X.Tick.Marker = mettrig.PreciseTicks{N: 5}
	p.Y.Tick.Marker = mettrig.PreciseTicks{N: 5}

	line, err := plotter.NewLine(pts)
	if err != nil {
		log.Fatal(err)
	}
	p.Add(line)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, prefix+"_scan.png"); err != nil {
		log.Fatal(err)
	}
}
