package kernel

type Context struct{}

type Resource[T any] struct {
	value T
}

func (r *Resource[T]) Claim(ctx *Context, body func(v *T)) {
	body(&r.value)
}

func (r *Resource[T]) Borrow(ctx *Context) *T {
	return &r.value
}
