package repokit

// Binder binds a domain repo to a concrete Queryer at wiring time.
// Services hold a Binder instead of a live repo so persistence stays optional
type Binder[T any] interface {
	Bind(Queryer) T
}
