package datasource

import (
	"strings"

	"github.com/g-claudino/Cartola-FC-Tournament-Analysis/pkg/podds"
	"github.com/g-claudino/Cartola-FC-Tournament-Analysis/pkg/util"
)

// AliasTable maps names used by one source onto the canonical names used by
// the results table. Lookups try the exact name first, then its slug, so
// case and accents don't matter.
type AliasTable struct {
	exact   map[string]string
	slugged map[string]string
}

func NewAliasTable(aliases map[string]string) *AliasTable {
	a := &AliasTable{
		exact:   make(map[string]string, len(aliases)),
		slugged: make(map[string]string, len(aliases)),
	}
	for from, to := range aliases {
		a.exact[strings.TrimSpace(from)] = strings.TrimSpace(to)
		a.slugged[util.Slugify(from)] = strings.TrimSpace(to)
	}
	return a
}

// Resolve returns the canonical name for name, or name itself when it has no alias
func (a *AliasTable) Resolve(name string) podds.TeamName {
	name = strings.TrimSpace(name)
	if a == nil {
		return podds.TeamName(name)
	}
	if to, ok := a.exact[name]; ok {
		return podds.TeamName(to)
	}
	if to, ok := a.slugged[util.Slugify(name)]; ok {
		return podds.TeamName(to)
	}
	return podds.TeamName(name)
}

func (a *AliasTable) Len() int {
	if a == nil {
		return 0
	}
	return len(a.exact)
}
