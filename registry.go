package pswin

import "github.com/puzpuzpuz/xsync"

// Registry is the host-side provider table. The host constructs providers,
// adds them here and hands the registry to its receiver; nothing registers
// itself globally.
type Registry struct {
	providers *xsync.MapOf[string, *Provider]
}

func NewRegistry() *Registry {
	return &Registry{providers: xsync.NewMapOf[*Provider]()}
}

func (r *Registry) Add(p *Provider) {
	r.providers.Store(p.Name(), p)
}

func (r *Registry) Get(name string) (*Provider, bool) {
	return r.providers.Load(name)
}

func (r *Registry) Names() []string {
	var names []string
	r.providers.Range(func(key string, _ *Provider) bool {
		names = append(names, key)
		return true
	})
	return names
}
