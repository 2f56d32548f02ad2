package cli

import (
	"time"

	"github.com/alexanderramin/pomotodo/internal/config"
	"github.com/alexanderramin/pomotodo/internal/domain"
	"github.com/spf13/pflag"
)

// durationValue is a pflag.Value accepting "25m", "90s" or bare seconds.
type durationValue struct {
	d   time.Duration
	set bool
}

var _ pflag.Value = (*durationValue)(nil)

func (v *durationValue) String() string {
	if !v.set {
		return ""
	}
	return v.d.String()
}

func (v *durationValue) Set(s string) error {
	d, err := config.ParseDuration(s)
	if err != nil {
		return err
	}
	if err := config.ValidateDuration(d); err != nil {
		return err
	}
	v.d = d
	v.set = true
	return nil
}

func (v *durationValue) Type() string { return "duration" }

// seconds returns the flag value in seconds, or fallback when unset.
func (v *durationValue) seconds(fallback int) int {
	if !v.set {
		return fallback
	}
	return int(v.d / time.Second)
}

// addViewFlags registers --completed and --all on fs.
func addViewFlags(fs *pflag.FlagSet) {
	fs.Bool("completed", false, "Show only completed to-dos")
	fs.Bool("all", false, "Show open and completed to-dos")
}

// viewFromFlags reads the flags registered by addViewFlags.
func viewFromFlags(fs *pflag.FlagSet) domain.TodoView {
	if all, _ := fs.GetBool("all"); all {
		return domain.ViewAll
	}
	if completed, _ := fs.GetBool("completed"); completed {
		return domain.ViewCompleted
	}
	return domain.ViewActive
}
