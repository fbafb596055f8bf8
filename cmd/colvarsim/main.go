// Command colvarsim runs the synthetic testbed engine through the colvars
// proxy: a demonstration of the full per-step data-sharing protocol,
// optionally across several in-process replicas, with an interactive TUI
// mode.
package main

import (
	"flag"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/leelasd/colvars"
	"github.com/leelasd/colvars/logging"
	"github.com/leelasd/colvars/proxy"
	"github.com/leelasd/colvars/replica"
	"github.com/leelasd/colvars/testbed"
)

func main() {
	var (
		configFile  = flag.String("config", "", "Path to YAML run configuration")
		steps       = flag.Int("steps", 0, "Override number of steps")
		replicas    = flag.Int("replicas", 0, "Override number of replicas")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	cfg, err := loadSimConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *steps > 0 {
		cfg.Steps = *steps
	}
	if *replicas > 0 {
		cfg.Replicas = *replicas
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(cfg, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(cfg simConfig, verbose bool) error {
	logger, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Replicas == 1 {
		return runReplica(cfg, 0, replica.Disabled{}, logger)
	}

	hub := replica.NewLocalHub(cfg.Replicas)
	var wg sync.WaitGroup
	errs := make([]error, cfg.Replicas)
	for r := 0; r < cfg.Replicas; r++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			errs[rank] = runReplica(cfg, rank, hub.Replica(rank), logger)
		}(r)
	}
	wg.Wait()

	for rank, err := range errs {
		if err != nil {
			return fmt.Errorf("replica %d: %w", rank, err)
		}
	}
	return nil
}

func runReplica(cfg simConfig, rank int, comm replica.Comm, logger *zap.Logger) error {
	eng := testbed.New(cfg.engineConfig(rank))

	prefix := cfg.OutputPrefix
	if comm.Enabled() {
		prefix = fmt.Sprintf("%srep%d.", prefix, rank)
	}

	p, err := proxy.New(eng,
		proxy.WithSink(logging.NewZapSink(logger.With(zap.Int("replica", rank)))),
		proxy.WithPrefixes("", prefix, prefix),
	)
	if err != nil {
		return err
	}
	defer p.Close()

	// The demo "biasing module": a constant pull on the first atom, the
	// simplest component that exercises the force protocol.
	pulled, err := p.InitAtom(eng.AtomID(0))
	if err != nil {
		return err
	}
	pull := cfg.pull()

	traj, err := p.OutputStream("colvars.traj")
	if err != nil {
		return err
	}
	fmt.Fprintln(traj, "# step x y z energy")

	var energy float64
	for s := 1; s <= cfg.Steps; s++ {
		eng.BeginStep(p)

		p.ApplyForce(pulled, pull)
		p.AddEnergy(pull.Norm2())

		energy = eng.CompleteStep(p)

		if cfg.TrajStride > 0 && s%cfg.TrajStride == 0 {
			pos := p.AtomPosition(pulled)
			fmt.Fprintf(traj, "%d %.4f %.4f %.4f %.4f\n", s, pos[0], pos[1], pos[2], energy)
		}

		if comm.Enabled() && s%100 == 0 {
			if err := p.ReplicaBarrier(); err != nil {
				return err
			}
		}
	}

	if err := p.CloseOutputStream("colvars.traj"); err != nil {
		return err
	}

	frame, _ := p.Frame()
	pos := p.AtomPosition(pulled)
	p.Log(fmt.Sprintf("run finished: %d steps, frame %d, pulled atom at (%.2f, %.2f, %.2f)",
		cfg.Steps, frame, pos[0], pos[1], pos[2]))

	summary(os.Stdout, cfg, rank, p, pos)
	return nil
}

func summary(w *os.File, cfg simConfig, rank int, p *proxy.Proxy, pos colvars.Vec3) {
	fmt.Fprintf(w, "replica %d/%d done: %d atoms, %d steps, T=%.0fK, pulled atom at (%.2f, %.2f, %.2f)\n",
		rank, p.ReplicaCount(), cfg.Atoms, cfg.Steps, p.Temperature(), pos[0], pos[1], pos[2])
}
