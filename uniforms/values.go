package uniforms

// Values is an ordered set of named uniform values. The zero value is
// empty and ready to use. Values is not safe for concurrent mutation.
type Values struct {
	names  []string
	values map[string]any
}

func New() *Values {
	return &Values{}
}

// Add stores value under name and returns v. Adding an existing name
// replaces its value and keeps its position.
func (v *Values) Add(name string, value any) *Values {
	if v.values == nil {
		v.values = make(map[string]any)
	}
	if _, ok := v.values[name]; !ok {
		v.names = append(v.names, name)
	}
	v.values[name] = value
	return v
}

// Set replaces the value of an existing name. It reports false and changes
// nothing when name was never added.
func (v *Values) Set(name string, value any) bool {
	if _, ok := v.values[name]; !ok {
		return false
	}
	v.values[name] = value
	return true
}

func (v *Values) Get(name string) (any, bool) {
	value, ok := v.values[name]
	return value, ok
}

func (v *Values) Len() int {
	return len(v.names)
}

// Names returns value names in insertion order.
func (v *Values) Names() []string {
	return append([]string(nil), v.names...)
}
