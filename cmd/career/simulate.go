package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/umacareer/internal/game/career"
	"github.com/cory-johannsen/umacareer/internal/game/condition"
	"github.com/cory-johannsen/umacareer/internal/game/dice"
	"github.com/cory-johannsen/umacareer/internal/game/stat"
	"github.com/cory-johannsen/umacareer/internal/game/support"
	"github.com/cory-johannsen/umacareer/internal/game/trainee"
	"github.com/cory-johannsen/umacareer/internal/game/training"
	"github.com/cory-johannsen/umacareer/internal/storage/postgres"
	redisstore "github.com/cory-johannsen/umacareer/internal/storage/redis"
	"github.com/cory-johannsen/umacareer/internal/storage/sqlite"
)

var (
	traineeID    int
	supportIDs   []int
	supportLevel int
	seed         uint64
	interactive  bool
	policyName   string
	maxRate      int
	saveHistory  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run one career",
	Long: `Run one career for a trainee from the record database, either interactively
or with an automatic policy. Snapshots are cached in Redis when redis.addr is set.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&traineeID, "trainee", 0, "trainee card id (0 = first record)")
	simulateCmd.Flags().IntSliceVar(&supportIDs, "supports", nil, "support card ids to place")
	simulateCmd.Flags().IntVar(&supportLevel, "support-level", 0, "support level (0 = training.support_level)")
	simulateCmd.Flags().Uint64Var(&seed, "seed", 0, "seed for reproducible rolls (0 = crypto source)")
	simulateCmd.Flags().BoolVar(&interactive, "interactive", false, "choose each action from a menu")
	simulateCmd.Flags().StringVar(&policyName, "auto", "balanced",
		"automatic policy: "+strings.Join(career.PolicyNames(), ", "))
	simulateCmd.Flags().IntVar(&maxRate, "max-failure-rate", career.DefaultMaxFailureRate, "highest failure rate the automatic policy trains at")
	simulateCmd.Flags().BoolVar(&saveHistory, "save", false, "save the career summary to PostgreSQL")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	start := time.Now()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer func() { _ = e.logger.Sync() }()

	r, err := e.loadRoster(ctx)
	if err != nil {
		return err
	}
	src := dice.NewCryptoSource()
	if seed != 0 {
		src = dice.NewSeededSource(seed)
	}
	c, err := e.build(r, src)
	if err != nil {
		return err
	}
	e.logger.Info("career started",
		zap.String("career_id", c.ID().String()),
		zap.Int("trainee_id", c.Trainee().ID),
		zap.String("trainee", c.Trainee().Name),
		zap.Ints("supports", supportIDs),
	)

	var snapshots *redisstore.SnapshotStore
	if e.cfg.Redis.Enabled() {
		client, err := redisstore.NewClient(ctx, e.cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		snapshots = redisstore.NewSnapshotStore(client, e.cfg.Redis.SnapshotTTL)
	}

	conditions, err := condition.LoadDirectory(e.cfg.Content.ConditionsDir)
	if err != nil {
		return fmt.Errorf("loading conditions: %w", err)
	}

	out := cmd.OutOrStdout()
	var policy career.Policy
	if interactive {
		policy = prompter(bufio.NewScanner(cmd.InOrStdin()), out, conditions)
	} else if policy, err = career.ParsePolicy(policyName, maxRate); err != nil {
		return err
	}

	for !c.Complete() {
		a := policy(c)
		if a == "" {
			fmt.Fprintln(out, "Goodbye!")
			break
		}
		res, err := c.ExecuteAction(a)
		if err != nil {
			return err
		}
		if interactive {
			printResult(out, res)
		}
		if snapshots != nil {
			if err := snapshots.Put(ctx, c.State()); err != nil {
				e.logger.Warn("caching snapshot", zap.Error(err))
			}
		}
	}

	summary := c.Summary()
	printSummary(out, summary, conditions)

	if saveHistory {
		pool, err := postgres.NewPool(ctx, e.cfg.Database)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := pool.Ready(ctx, 5*time.Second); err != nil {
			return fmt.Errorf("career history unavailable: %w", err)
		}
		rec, err := postgres.NewCareerRepository(pool.DB()).Save(ctx, summary)
		if err != nil {
			return err
		}
		e.logger.Info("career saved", zap.String("career_id", rec.ID.String()), zap.Time("recorded_at", rec.RecordedAt))
	}

	e.logger.Info("simulation finished",
		zap.String("career_id", summary.ID.String()),
		zap.Int("turns", summary.Turns),
		zap.Bool("complete", summary.Complete),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// roster is the trainee and supports a career is built from.
type roster struct {
	trainee  trainee.Record
	supports []support.Record
	level    int
	defs     []training.FacilityDef
}

// loadRoster reads the selected trainee and supports from the record database.
func (e *env) loadRoster(ctx context.Context) (*roster, error) {
	store, err := sqlite.Open(e.cfg.Records.Path)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	r := &roster{level: supportLevel}
	if r.level == 0 {
		r.level = e.cfg.Training.SupportLevel
	}
	if traineeID == 0 {
		r.trainee, err = store.FirstTrainee(ctx)
	} else {
		r.trainee, err = store.Trainee(ctx, traineeID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading trainee: %w", err)
	}
	for _, id := range supportIDs {
		rec, err := store.Support(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("loading support %d: %w", id, err)
		}
		r.supports = append(r.supports, rec)
	}
	if r.defs, err = e.facilities(); err != nil {
		return nil, err
	}
	return r, nil
}

// build starts a fresh career from r rolling with src and places its supports.
func (e *env) build(r *roster, src dice.Source) (*career.Career, error) {
	t, err := trainee.New(r.trainee, e.cfg.Career.MaxEnergy)
	if err != nil {
		return nil, err
	}
	supports := make([]*support.Support, 0, len(r.supports))
	for _, rec := range r.supports {
		s, err := support.New(rec, r.level)
		if err != nil {
			return nil, err
		}
		supports = append(supports, s)
	}
	c, err := career.New(t, dice.NewLoggedRoller(src, e.logger), e.logger, career.Config{
		MaxTurns:       e.cfg.Career.MaxTurns,
		StartingEnergy: e.cfg.Career.StartingEnergy,
		Training: training.Options{
			Facilities:     r.defs,
			FriendshipGain: e.cfg.Training.FriendshipGain,
		},
	})
	if err != nil {
		return nil, err
	}
	if err := c.Training().PlaceSupports(supports); err != nil {
		return nil, err
	}
	return c, nil
}

// prompter returns a policy that asks for each action on out and reads the
// answer from in. It returns the empty action on quit or end of input.
func prompter(in *bufio.Scanner, out io.Writer, conditions *condition.Registry) career.Policy {
	return func(c *career.Career) career.Action {
		for {
			printMenu(out, c, conditions)
			fmt.Fprint(out, "\nSelect an action: ")
			if !in.Scan() {
				return ""
			}
			a, err := choose(strings.TrimSpace(in.Text()), c.AvailableActions())
			if errors.Is(err, errQuit) {
				return ""
			}
			if err != nil {
				fmt.Fprintf(out, "%v. Please try again.\n", err)
				continue
			}
			return a
		}
	}
}

var errQuit = errors.New("quit")

// choose resolves a menu number or an action name.
func choose(input string, actions []career.Action) (career.Action, error) {
	if n, err := strconv.Atoi(input); err == nil {
		if n == 0 {
			return "", errQuit
		}
		if n < 1 || n > len(actions) {
			return "", fmt.Errorf("invalid choice %d", n)
		}
		return actions[n-1], nil
	}
	if strings.EqualFold(input, "quit") {
		return "", errQuit
	}
	return career.ParseAction(input)
}

func printMenu(out io.Writer, c *career.Career, conditions *condition.Registry) {
	s := c.State()
	fmt.Fprintln(out, "\n=== Career ===")
	fmt.Fprintf(out, "Turn: %d/%d\n", s.Turn, s.MaxTurns)
	fmt.Fprintf(out, "Energy: %d/%d\n", s.Energy, s.MaxEnergy)
	fmt.Fprintf(out, "Mood: %s\n", s.Mood)
	fmt.Fprintf(out, "Trainee: %s\n", c.Trainee().Name)
	fmt.Fprintf(out, "Stats: %s\n", formatStats(s.Stats))
	var active []condition.ID
	for id, on := range s.Conditions {
		if on {
			active = append(active, id)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i] < active[j] })
	fmt.Fprintf(out, "Conditions: %s\n", formatConditions(active, conditions))

	rates := make(map[stat.Stat]int, stat.Count)
	for _, f := range stat.All() {
		rates[f], _ = c.Training().FailureRate(f)
	}
	fmt.Fprintln(out, "\nAvailable Actions:")
	for i, a := range c.AvailableActions() {
		if f, ok := a.Facility(); ok {
			fmt.Fprintf(out, "%d. %s (failure %d%%)\n", i+1, strings.ToUpper(string(a)), rates[f])
			continue
		}
		fmt.Fprintf(out, "%d. %s\n", i+1, strings.ToUpper(string(a)))
	}
	fmt.Fprintln(out, "0. Quit")
}

func printResult(out io.Writer, res career.Result) {
	switch {
	case res.Training != nil:
		tr := res.Training
		fmt.Fprintf(out, "Trained %s: %s (rate %d%%, roll %.1f)", tr.Facility, tr.Outcome, tr.FailureRate, tr.Roll)
		if tr.Outcome == training.Success {
			fmt.Fprintf(out, " gains %s", formatStats(tr.Gains))
		}
		if tr.LeveledUp {
			fmt.Fprintf(out, " facility level %d", tr.Level)
		}
		fmt.Fprintln(out)
	case res.Action == career.Rest:
		fmt.Fprintf(out, "Rested: +%d energy", res.EnergyGain)
		if res.NightOwl {
			fmt.Fprint(out, " (night owl)")
		}
		fmt.Fprintln(out)
	case res.Action == career.Recreation:
		fmt.Fprintf(out, "Recreation: %s", res.Recreation)
		if res.ClawGame {
			fmt.Fprint(out, " (won the claw game)")
		}
		fmt.Fprintln(out)
	default:
		fmt.Fprintf(out, "%s done\n", res.Action)
	}
}

func printSummary(out io.Writer, s career.Summary, conditions *condition.Registry) {
	fmt.Fprintln(out, "\nCareer simulation complete!")
	fmt.Fprintf(out, "Career:     %s\n", s.ID)
	fmt.Fprintf(out, "Trainee:    %s (%d)\n", s.TraineeName, s.TraineeID)
	fmt.Fprintf(out, "Turns:      %d\n", s.Turns)
	fmt.Fprintf(out, "Base:       %s\n", formatStats(s.BaseStats))
	fmt.Fprintf(out, "Final:      %s\n", formatStats(s.FinalStats))
	fmt.Fprintf(out, "Facilities: %s\n", formatStats(s.FacilityLevels))
	fmt.Fprintf(out, "Mood:       %s\n", s.Mood)
	fmt.Fprintf(out, "Conditions: %s\n", formatConditions(s.Conditions, conditions))
}

func formatConditions(ids []condition.ID, conditions *condition.Registry) string {
	if len(ids) == 0 {
		return "none"
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, conditions.Name(id))
	}
	return strings.Join(names, ", ")
}

func formatStats(s stat.Stats) string {
	parts := make([]string, 0, stat.Count)
	for _, k := range stat.All() {
		parts = append(parts, fmt.Sprintf("%s %d", k, s.Get(k)))
	}
	return strings.Join(parts, ", ")
}
