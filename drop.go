package stringsengine

// Dropper is implemented by values that own resources which must be
// released when a container destroys them.
type Dropper interface {
	Drop()
}

// Destroy runs v's destructor if its type implements Dropper. Plain values
// have nothing to destroy.
func Destroy[T any](v T) {
	if d, ok := any(v).(Dropper); ok {
		d.Drop()
	}
}
