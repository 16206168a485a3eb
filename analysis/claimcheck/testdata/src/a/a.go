package a

import "omibyte.io/blinky/kernel"

type app struct {
	led   *kernel.Resource[bool]
	count *kernel.Resource[int]
}

type lookalike struct{}

func (lookalike) Claim(ctx *kernel.Context, body func(v *int)) {}

func (a *app) nested(ctx *kernel.Context) {
	a.led.Claim(ctx, func(on *bool) {
		a.led.Claim(ctx, func(*bool) {}) // want `Claim of a.led inside its own claim`
	})
}

func (a *app) borrowed(ctx *kernel.Context) {
	a.count.Claim(ctx, func(n *int) {
		*a.count.Borrow(ctx) = 1 // want `Borrow of a.count inside its own claim`
	})
}

func (a *app) deep(ctx *kernel.Context) {
	a.led.Claim(ctx, func(*bool) {
		a.count.Claim(ctx, func(*int) {
			a.count.Claim(ctx, func(*int) {}) // want `Claim of a.count inside its own claim`
		})
	})
}

func (a *app) ok(ctx *kernel.Context) {
	a.led.Claim(ctx, func(on *bool) {
		a.count.Claim(ctx, func(n *int) { *n++ })
	})
	a.led.Claim(ctx, func(on *bool) {})
	*a.count.Borrow(ctx) = 2
}

func local(ctx *kernel.Context, r *kernel.Resource[int]) {
	r.Claim(ctx, func(v *int) {
		(r).Claim(ctx, func(*int) {}) // want `Claim of r inside its own claim`
	})
}

func notAResource(ctx *kernel.Context) {
	var l lookalike
	l.Claim(ctx, func(*int) {
		l.Claim(ctx, func(*int) {})
	})
}
