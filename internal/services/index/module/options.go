package module

import (
	"strings"

	"ifcb/internal/platform/config"
)

// Options holds configuration settings for the index module
type Options struct {
	Root      string
	Whitelist []string
	Blacklist []string
	Refresh   bool
	BatchSize int
}

// FromConfig reads the index options from config with CORE_INDEX_ prefix
func FromConfig(cfg config.Conf) Options {
	ix := cfg.Prefix("CORE_INDEX_")
	return Options{
		Root:      ix.MustString("ROOT"),
		Whitelist: splitCSV(ix.MayString("WHITELIST", "")),
		Blacklist: splitCSV(ix.MayString("BLACKLIST", "")),
		Refresh:   ix.MayBool("REFRESH", false),
		BatchSize: ix.MayInt("BATCH_SIZE", 10000),
	}
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
