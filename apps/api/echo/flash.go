package echoapi

import (
	"fmt"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const sessionName = "attendance"

func addFlash(ctx echo.Context, msg string) error {
	sess, err := session.Get(sessionName, ctx)
	if sess == nil {
		return errors.Wrap(err, "getting session")
	}
	// an undecodable cookie yields a fresh session; overwrite it
	sess.AddFlash(msg)
	return errors.Wrap(sess.Save(ctx.Request(), ctx.Response()), "saving session")
}

// popFlashes returns and clears the pending flash messages.
func popFlashes(ctx echo.Context) []string {
	sess, _ := session.Get(sessionName, ctx)
	if sess == nil {
		return nil
	}
	flashes := sess.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	_ = sess.Save(ctx.Request(), ctx.Response())

	msgs := make([]string, 0, len(flashes))
	for _, f := range flashes {
		msgs = append(msgs, fmt.Sprint(f))
	}
	return msgs
}

func newView(ctx echo.Context, data interface{}) view {
	return view{Flashes: popFlashes(ctx), Data: data}
}
