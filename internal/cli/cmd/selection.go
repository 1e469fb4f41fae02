package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/timelapsetech/videocalc-db/internal/catalog"
	"github.com/timelapsetech/videocalc-db/internal/config"
	"github.com/timelapsetech/videocalc-db/internal/model"
	"github.com/timelapsetech/videocalc-db/internal/resolver"
	"github.com/timelapsetech/videocalc-db/internal/scheduler"
	"github.com/timelapsetech/videocalc-db/internal/share"
)

// levelFlags maps selection levels to their flag names.
var levelFlags = []struct {
	field model.Field
	flag  string
}{
	{model.FieldCategory, "category"},
	{model.FieldCodec, "codec"},
	{model.FieldVariant, "variant"},
	{model.FieldResolution, "resolution"},
	{model.FieldFrameRate, "framerate"},
}

func bindSelectionFlags(fs *pflag.FlagSet) {
	fs.StringP("category", "c", "", "Category id, e.g. delivery, broadcast, cinema")
	fs.String("codec", "", "Codec id within the category")
	fs.String("variant", "", "Variant name within the codec")
	fs.StringP("resolution", "r", "", "Resolution id (default "+model.DefaultResolutionID+")")
	fs.StringP("framerate", "f", "", "Frame rate id (default "+model.DefaultFrameRateID+")")
	fs.StringP("duration", "d", "", "Clip length: HH:MM:SS, MM:SS, seconds, or 1h30m (default 01:00:00)")
	fs.String("link", "", "Start from a shared link or query string")
	fs.String("preset", "", "Start from a saved preset (id or name)")
}

// baseSelection picks the starting point: a shared link, a preset, or the
// session defaults. Explicit selection flags are layered on top by
// applySelectionFlags.
func baseSelection(cmd *cobra.Command, sess *session) (model.Selection, error) {
	link, _ := cmd.Flags().GetString("link")
	name, _ := cmd.Flags().GetString("preset")
	switch {
	case link != "" && name != "":
		return model.Selection{}, &ExitError{Code: ExitCLIError, Err: fmt.Errorf("--link and --preset are mutually exclusive")}
	case link != "":
		l, err := share.Decode(link)
		if err != nil {
			return model.Selection{}, &ExitError{Code: ExitCLIError, Err: err}
		}
		return share.Validate(l, sess.catalog), nil
	case name != "":
		store, err := sess.presets()
		if err != nil {
			return model.Selection{}, err
		}
		p, ok := store.Find(name)
		if !ok {
			return model.Selection{}, &ExitError{Code: ExitCLIError, Err: fmt.Errorf("no preset named %q", name)}
		}
		return p.Selection(model.DefaultDuration()), nil
	}
	return model.DefaultSelection(), nil
}

func applySelectionFlags(cmd *cobra.Command, sel model.Selection) (model.Selection, error) {
	fs := cmd.Flags()
	for _, lf := range levelFlags {
		if !fs.Changed(lf.flag) {
			continue
		}
		v, _ := fs.GetString(lf.flag)
		sel = sel.With(lf.field, strings.TrimSpace(v))
	}
	if fs.Changed("duration") {
		raw, _ := fs.GetString("duration")
		d, err := model.ParseDuration(raw)
		if err != nil {
			return sel, &ExitError{Code: ExitCLIError, Err: fmt.Errorf("invalid --duration: %w", err)}
		}
		sel.Duration = d
	}
	return sel, nil
}

func selectionFromFlags(cmd *cobra.Command, sess *session) (model.Selection, error) {
	sel, err := baseSelection(cmd, sess)
	if err != nil {
		return sel, err
	}
	return applySelectionFlags(cmd, sel)
}

// registerSelectionCompletions offers catalog values for the selection flags,
// narrowed by whatever the command line already selects.
func registerSelectionCompletions(cmd *cobra.Command) {
	for _, lf := range levelFlags {
		field := lf.field
		_ = cmd.RegisterFlagCompletionFunc(lf.flag, func(c *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return completeLevel(c, field), cobra.ShellCompDirectiveNoFileComp
		})
	}
	_ = cmd.RegisterFlagCompletionFunc("preset", func(c *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return completePresets(c), cobra.ShellCompDirectiveNoFileComp
	})
}

func completeLevel(cmd *cobra.Command, field model.Field) []string {
	// Completion runs without the persistent pre-run hook.
	if err := config.Init(cmd.Root()); err != nil {
		return nil
	}
	cat, err := catalog.Open(config.Load().Catalog)
	if err != nil {
		return nil
	}
	sel := model.DefaultSelection()
	sel, err = applySelectionFlags(cmd, sel)
	if err != nil {
		return nil
	}
	// Only levels above the one being completed narrow the domain.
	r := resolver.New(cat)
	settled, _, _ := r.Settle(truncateBelow(sel, field))
	var out []string
	for _, o := range r.Domain(settled, field) {
		out = append(out, o.ID+"\t"+o.Name)
	}
	return out
}

// truncateBelow clears field and the catalog levels under it. Resolution and
// frame rate keep their values so the frame-rate domain stays meaningful.
func truncateBelow(sel model.Selection, field model.Field) model.Selection {
	below := false
	for _, l := range model.Levels {
		if l == field {
			below = true
		}
		if below && l != model.FieldResolution && l != model.FieldFrameRate {
			sel = sel.With(l, "")
		}
	}
	return sel
}

func completePresets(cmd *cobra.Command) []string {
	if err := config.Init(cmd.Root()); err != nil {
		return nil
	}
	sess := &session{settings: config.Load()}
	store, err := sess.presets()
	if err != nil {
		return nil
	}
	var out []string
	for _, p := range store.List() {
		out = append(out, p.Name+"\t"+p.ID)
	}
	return out
}

// settle runs sel through a synchronous scheduler so auto-selections and
// corrections are applied before the caller reads it back.
func settle(sess *session, sel model.Selection, opts ...scheduler.Option) *scheduler.Scheduler {
	opts = append([]scheduler.Option{
		scheduler.WithInitial(sel),
		scheduler.WithLogger(sess.logger),
	}, opts...)
	return scheduler.New(sess.catalog, opts...)
}
