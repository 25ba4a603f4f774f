package serverutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
)

const (
	SessionCookieName = "movie_match_sid"
	sessionLocalKey   = "session_id"
)

// SessionMiddleware makes sure every request carries a widget session id,
// issuing a new cookie when the request has none or an unparsable one.
func SessionMiddleware(ttl time.Duration, secure bool) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		// the id outlives the request as a store key; fiber reuses the header buffer
		sid := utils.CopyString(ctx.Cookies(SessionCookieName))
		if _, err := uuid.Parse(sid); err != nil {
			sid = uuid.NewString()
		}

		// refreshed on every request so the cookie lives as long as the stored state
		ctx.Cookie(&fiber.Cookie{
			Name:     SessionCookieName,
			Value:    sid,
			Path:     "/",
			Expires:  time.Now().Add(ttl),
			HTTPOnly: true,
			Secure:   secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})

		ctx.Locals(sessionLocalKey, sid)
		return ctx.Next()
	}
}

// SessionID returns the id set by SessionMiddleware.
func SessionID(ctx *fiber.Ctx) string {
	sid, _ := ctx.Locals(sessionLocalKey).(string)
	return sid
}
