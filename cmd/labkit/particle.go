package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/labkit/internal/physics"
	"github.com/san-kum/labkit/internal/viz"
	"github.com/spf13/cobra"
)

var (
	momentum float64
	mass     float64
	charge   float64
	name     string
	applies  []string
	scanFrom float64
	scanTo   float64
	steps    int
	keyStep  float64
)

func newParticleCmd() *cobra.Command {
	particleCmd := &cobra.Command{
		Use:   "particle",
		Short: "relativistic particle kinematics",
	}

	infoCmd := &cobra.Command{
		Use:   "info [species]",
		Short: "print particle info",
		Args:  cobra.MaximumNArgs(1),
		RunE:  particleInfo,
	}
	addParticleFlags(infoCmd)

	setCmd := &cobra.Command{
		Use:   "set [species]",
		Short: "apply momentum, energy or beta updates in order",
		Example: "  labkit particle set proton --momentum 200 --apply beta=0.8\n" +
			"  labkit particle set alpha --momentum 300 --apply energy=2000",
		Args: cobra.MaximumNArgs(1),
		RunE: particleSet,
	}
	addParticleFlags(setCmd)
	setCmd.Flags().StringArrayVar(&applies, "apply", nil, "update as key=value (momentum, energy, beta); repeatable")

	scanCmd := &cobra.Command{
		Use:   "scan [species]",
		Short: "tabulate energy and beta over a momentum range",
		Args:  cobra.MaximumNArgs(1),
		RunE:  particleScan,
	}
	addParticleFlags(scanCmd)
	scanCmd.Flags().Float64Var(&scanFrom, "from", 0, "first momentum (MeV/c)")
	scanCmd.Flags().Float64Var(&scanTo, "to", 2000, "last momentum (MeV/c)")
	scanCmd.Flags().IntVar(&steps, "steps", 20, "number of intervals")

	liveCmd := &cobra.Command{
		Use:   "live [species]",
		Short: "explore a particle interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  particleLive,
	}
	addParticleFlags(liveCmd)
	liveCmd.Flags().Float64Var(&keyStep, "step", 10, "momentum/energy change per key press")

	particleCmd.AddCommand(infoCmd, setCmd, scanCmd, liveCmd)
	return particleCmd
}

func addParticleFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&momentum, "momentum", 0, "initial momentum (MeV/c)")
	cmd.Flags().Float64Var(&mass, "mass", 0, "mass (MeV/c^2) of a custom particle")
	cmd.Flags().Float64Var(&charge, "charge", 0, "charge (e) of a custom particle")
	cmd.Flags().StringVar(&name, "name", "particle", "name of a custom particle")
}

// resolveParticle builds the particle from a species argument or, without
// one, from the custom --name/--mass/--charge flags.
func resolveParticle(args []string) (*physics.Particle, error) {
	var (
		p   *physics.Particle
		err error
	)
	if len(args) == 1 {
		cat, cerr := cfg.Catalog()
		if cerr != nil {
			return nil, cerr
		}
		s, serr := cat.Get(args[0])
		if serr != nil {
			return nil, serr
		}
		p, err = physics.NewSpecies(s, 0, cfg.ParticleOptions()...)
	} else {
		p, err = physics.New(name, mass, charge, 0, cfg.ParticleOptions()...)
	}
	if err != nil {
		return nil, err
	}
	applyMomentum(p, momentum)
	return p, nil
}

func applyMomentum(p *physics.Particle, value float64) {
	if p.SetMomentum(value) {
		logger.Warn("cannot set a negative or non-finite momentum, the momentum will be set to 0",
			"particle", p.Name(), "value", value)
	}
}

// warnRejection logs a soft rejection and swallows it. Any other error is
// returned.
func warnRejection(err error) error {
	var rej *physics.RejectionError
	if errors.As(err, &rej) {
		logger.Warn(rej.Error(), "particle", rej.Particle, "param", rej.Param, "value", rej.Value)
		return nil
	}
	return err
}

func printKinematics(w io.Writer, p *physics.Particle) {
	fmt.Fprintln(w, p.Info())
	fmt.Fprintf(w, "  energy = %g MeV, beta = %g\n", p.Energy(), p.Beta())
}

func particleInfo(cmd *cobra.Command, args []string) error {
	p, err := resolveParticle(args)
	if err != nil {
		return err
	}
	printKinematics(cmd.OutOrStdout(), p)
	return nil
}

func particleSet(cmd *cobra.Command, args []string) error {
	p, err := resolveParticle(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printKinematics(out, p)
	for _, a := range applies {
		key, raw, ok := strings.Cut(a, "=")
		if !ok {
			return fmt.Errorf("invalid update %q, expected key=value", a)
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid value in %q: %w", a, err)
		}

		key = strings.TrimSpace(key)
		if key == "momentum" {
			applyMomentum(p, value)
		} else if err := warnRejection(p.SetParam(key, value)); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s=%g:\n", key, value)
		printKinematics(out, p)
	}
	return nil
}

func particleScan(cmd *cobra.Command, args []string) error {
	p, err := resolveParticle(args)
	if err != nil {
		return err
	}
	if steps < 1 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}
	if scanFrom < 0 || scanTo < scanFrom {
		return fmt.Errorf("invalid momentum range [%g, %g]", scanFrom, scanTo)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "scanning %s (mass %g MeV/c^2)\n\n", p.Name(), p.Mass())

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MOMENTUM\tENERGY\tBETA\tGAMMA")

	betas := make([]float64, 0, steps+1)
	for i := 0; i <= steps; i++ {
		p.SetMomentum(scanFrom + (scanTo-scanFrom)*float64(i)/float64(steps))
		betas = append(betas, p.Beta())
		fmt.Fprintf(w, "%.3f\t%.3f\t%.6f\t%.4f\n", p.Momentum(), p.Energy(), p.Beta(), p.Gamma())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	graph := asciigraph.Plot(betas,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Caption("beta vs momentum"),
	)
	fmt.Fprintln(out)
	fmt.Fprintln(out, graph)
	return nil
}

func particleLive(cmd *cobra.Command, args []string) error {
	p, err := resolveParticle(args)
	if err != nil {
		return err
	}

	prog := tea.NewProgram(viz.NewExplorer(p, keyStep))
	if _, err := prog.Run(); err != nil {
		return err
	}
	return nil
}

func newSpeciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "species",
		Short: "list known particle species",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := cfg.Catalog()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tNAME\tMASS (MeV/c^2)\tCHARGE (e)")
			for _, key := range cat.Names() {
				s, _ := cat.Get(key)
				fmt.Fprintf(w, "%s\t%s\t%g\t%+g\n", key, s.Name, s.Mass, s.Charge)
			}
			return w.Flush()
		},
	}
}

// newDemoCmd walks through the setters, including the rejected ones.
func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "run the particle walkthrough",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.OutOrStdout())
		},
	}
}

func runDemo(out io.Writer) error {
	opts := cfg.ParticleOptions()

	particle, err := physics.New("test_particle", 0.5, 2, 100, opts...)
	if err != nil {
		return err
	}
	printKinematics(out, particle)
	fmt.Fprintf(out, "Beta = %g\n", particle.Beta())
	for _, b := range []float64{-1, 1, 0.5} {
		if err := warnRejection(particle.SetBeta(b)); err != nil {
			return err
		}
	}
	printKinematics(out, particle)

	fmt.Fprintln(out, "Proton:")
	proton, err := physics.NewProton(200, opts...)
	if err != nil {
		return err
	}
	printKinematics(out, proton)
	if err := warnRejection(proton.SetBeta(0.8)); err != nil {
		return err
	}
	printKinematics(out, proton)

	fmt.Fprintln(out, "Alpha particle:")
	alpha, err := physics.NewAlpha(300, opts...)
	if err != nil {
		return err
	}
	if err := warnRejection(alpha.SetEnergy(2000)); err != nil {
		return err
	}
	printKinematics(out, alpha)

	if _, err := physics.New("test_particle_2", -3, -2, 100, opts...); err != nil {
		logger.Error("construction failed", "err", err)
	}
	return nil
}
