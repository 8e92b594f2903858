package logs

import (
	"context"
	"errors"
	"fmt"
)

// CallSite identifies the function call being resolved or executed.
type CallSite struct {
	Name    string
	NumArgs int
}

func (c CallSite) String() string {
	return fmt.Sprintf("%s/%d", c.Name, c.NumArgs)
}

type callSiteKey struct{}

func WithCallSite(ctx context.Context, name string, numArgs int) context.Context {
	return context.WithValue(ctx, callSiteKey{}, CallSite{
		Name:    name,
		NumArgs: numArgs,
	})
}

func CallSiteFrom(ctx context.Context) (CallSite, bool) {
	site, ok := ctx.Value(callSiteKey{}).(CallSite)
	return site, ok
}

// WrapCallSite annotates err with the call site carried by ctx, if any.
func WrapCallSite(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	site, ok := CallSiteFrom(ctx)
	if !ok {
		return err
	}
	return errors.Join(err, fmt.Errorf("call: %s", site))
}
