package main

import (
	"flag"
	"fmt"
	"image/color"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/Garsondee/particle-field/internal/config"
	"github.com/Garsondee/particle-field/internal/field"
	"github.com/Garsondee/particle-field/internal/raster"
	"gonum.org/v1/gonum/spatial/r2"
)

var reportBackground = color.RGBA{R: 3, G: 5, B: 16, A: 255}

type runConfig struct {
	ticks  int
	width  float64
	height float64
	dpr    float64
	opts   field.Options
}

type runStats struct {
	runIndex int
	seed     int64

	frames    int
	skipped   int
	particles int

	linksMin   int
	linksMax   int
	linksTotal int

	meanSpeed   float64
	bounces     int
	nearPointer int

	events map[string]int
	log    *field.EventLog
	target *raster.Target
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var quantity int
	var width, height, dpr float64
	var cfgPath string
	var pngPath string
	var dumpLog bool

	flag.IntVar(&runs, "runs", 5, "number of headless runs")
	flag.IntVar(&ticks, "ticks", 600, "frames per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&quantity, "quantity", -1, "particle count (overrides config)")
	flag.Float64Var(&width, "width", 800, "logical surface width")
	flag.Float64Var(&height, "height", 600, "logical surface height")
	flag.Float64Var(&dpr, "dpr", 1, "device pixel ratio")
	flag.StringVar(&cfgPath, "config", "", "TOML settings file")
	flag.StringVar(&pngPath, "png", "", "write the last run's final frame to this PNG file")
	flag.BoolVar(&dumpLog, "dump-log", false, "print each run's event log")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		os.Exit(2)
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		os.Exit(2)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	if quantity >= 0 {
		cfg.Field.Quantity = quantity
	}
	opts, err := cfg.Options()
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("=== Headless Field Report ===\n")
	fmt.Printf("surface=%gx%g@%g runs=%d ticks=%d seed_base=%d seed_step=%d\n", width, height, dpr, runs, ticks, seedBase, seedStep)
	fmt.Printf("options: %s\n\n", opts.Summary())

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		rc := runConfig{ticks: ticks, width: width, height: height, dpr: dpr, opts: opts}
		rc.opts.Seed = seedBase + int64(i)*seedStep
		stats := runField(i+1, rc)
		all = append(all, stats)
		printRun(stats)
		if dumpLog {
			fmt.Print(stats.log.Format())
			fmt.Println()
		}
	}
	printAggregate(all)

	if pngPath != "" {
		if err := writeSnapshot(pngPath, all[len(all)-1].target); err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nsnapshot written to %s\n", pngPath)
	}
}

// runField mounts one field on a raster target and pumps it rc.ticks times.
func runField(runIndex int, rc runConfig) runStats {
	host := &field.StaticHost{W: rc.width, H: rc.height, Scale: rc.dpr}
	target := raster.New(reportBackground)
	frames := &field.FrameQueue{}
	evlog := field.NewEventLog(false)
	f := field.Mount(host, target, frames, rc.opts, evlog)

	rs := runStats{
		runIndex: runIndex,
		seed:     rc.opts.Seed,
		linksMin: math.MaxInt,
		log:      evlog,
		target:   target,
	}
	prev := velocities(f.Particles())
	speedSum := 0.0
	speedSamples := 0
	for t := 0; t < rc.ticks; t++ {
		frames.Pump()
		st := f.Stats()
		rs.linksTotal += st.Links
		rs.linksMin = min(rs.linksMin, st.Links)
		rs.linksMax = max(rs.linksMax, st.Links)

		ps := f.Particles()
		rs.bounces += countBounces(prev, ps)
		bounds := f.Surface().Bounds()
		pointer := f.Pointer().Project(bounds)
		for i := range ps {
			speedSum += r2.Norm(ps[i].Vel)
			speedSamples++
			// Sampled after the step, so this is proximity, not impulses applied.
			if field.RepelImpulse(ps[i].Pos, pointer) != (r2.Vec{}) {
				rs.nearPointer++
			}
		}
		prev = velocities(ps)
	}
	st := f.Stats()
	rs.frames = st.Frame
	rs.skipped = st.Skipped
	rs.particles = st.Particles
	if speedSamples > 0 {
		rs.meanSpeed = speedSum / float64(speedSamples)
	}
	if rs.linksMin == math.MaxInt {
		rs.linksMin = 0
	}
	f.Unmount()
	rs.events = countEvents(evlog.Entries())
	return rs
}

func velocities(ps []field.Particle) []r2.Vec {
	out := make([]r2.Vec, len(ps))
	for i := range ps {
		out[i] = ps[i].Vel
	}
	return out
}

// countBounces counts velocity components that changed sign since the last
// frame. Only edge bounces flip velocity.
func countBounces(prev []r2.Vec, ps []field.Particle) int {
	if len(prev) != len(ps) {
		return 0
	}
	n := 0
	for i := range ps {
		if prev[i].X*ps[i].Vel.X < 0 {
			n++
		}
		if prev[i].Y*ps[i].Vel.Y < 0 {
			n++
		}
	}
	return n
}

func countEvents(entries []field.EventEntry) map[string]int {
	counts := map[string]int{}
	for _, e := range entries {
		counts[e.Category+"/"+e.Key]++
	}
	return counts
}

func writeSnapshot(path string, target *raster.Target) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := target.WritePNG(out); err != nil {
		_ = out.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return out.Close()
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("frames=%d skipped=%d particles=%d\n", rs.frames, rs.skipped, rs.particles)
	fmt.Printf("links_per_frame: min=%d max=%d avg=%.1f\n",
		rs.linksMin, rs.linksMax, avg(rs.linksTotal, rs.frames))
	fmt.Printf("motion: mean_speed=%.3f bounces=%d near_pointer_samples=%d\n",
		rs.meanSpeed, rs.bounces, rs.nearPointer)
	fmt.Printf("events: %s\n", joinCounts(rs.events))
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalLinks := 0
	totalFrames := 0
	totalBounces := 0
	totalSkipped := 0
	speedSum := 0.0
	linksMin := math.MaxInt
	linksMax := 0
	events := map[string]int{}
	for _, rs := range all {
		totalLinks += rs.linksTotal
		totalFrames += rs.frames
		totalBounces += rs.bounces
		totalSkipped += rs.skipped
		speedSum += rs.meanSpeed
		linksMin = min(linksMin, rs.linksMin)
		linksMax = max(linksMax, rs.linksMax)
		for k, v := range rs.events {
			events[k] += v
		}
	}
	if linksMin == math.MaxInt {
		linksMin = 0
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d frames=%d skipped=%d\n", len(all), totalFrames, totalSkipped)
	fmt.Printf("links_per_frame: min=%d max=%d avg=%.1f\n", linksMin, linksMax, avg(totalLinks, totalFrames))
	fmt.Printf("avg_per_run: bounces=%.1f mean_speed=%.3f\n", avg(totalBounces, len(all)), speedSum/float64(max(len(all), 1)))
	fmt.Printf("events: %s\n", joinCounts(events))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func joinCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, " ")
}
