package events

import "github.com/rs/zerolog"

// Log writes every event to a logger at debug level.
type Log struct {
	Logger zerolog.Logger
}

func (l Log) Update(u Update) {
	l.Logger.Debug().Uint64("seq", u.Seq).Str("state", string(u.State)).Msg("state")
}

func (l Log) Change(c Change) {
	l.Logger.Debug().
		Uint64("seq", c.Seq).
		Str("field", string(c.Field)).
		Str("from", c.From).
		Str("to", c.To).
		Str("rule", c.Rule).
		Msg("auto-correction")
}

func (l Log) Result(r Result) {
	ev := l.Logger.Debug().Uint64("seq", r.Seq).Str("outcome", r.Outcome)
	if r.Result != nil {
		ev = ev.Float64("mbps", r.Result.BitrateMbps).Float64("mb", r.Result.FileSizeMB)
	}
	ev.Msg("result")
}
