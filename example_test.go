package descent_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/descent"
	"github.com/aretw0/descent/pkg/domain"
)

func ExampleEngine_Compile() {
	eng := descent.New()

	snap, err := eng.Compile(context.Background(), `x^2+y^2`)
	if err != nil {
		panic(err)
	}
	fmt.Println(snap.Expression)
	fmt.Println(snap.GradientX, snap.GradientY)

	// Output:
	// x^2+y^2
	// 2*x 2*y
}

func ExampleEngine_Trace() {
	ctx := context.Background()
	eng := descent.New()

	snap, _ := eng.Compile(ctx, `x^2+y^2`)
	trace, err := eng.Trace(ctx, snap, domain.Point{X: 1, Y: 1}, domain.ModeDescend)
	if err != nil {
		panic(err)
	}
	fmt.Println(trace.Reason, trace.Status())

	// The origin is a critical point: the walk cannot start.
	_, err = eng.Trace(ctx, snap, domain.Point{X: 0, Y: 0}, domain.ModeDescend)
	fmt.Println(errors.Is(err, domain.ErrPathTooShort))

	// Output:
	// flat_gradient success
	// true
}
