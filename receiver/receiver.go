package receiver

import (
	"github.com/gofiber/fiber/v2"
	"github.com/oarkflow/log"
	"github.com/rs/xid"

	"github.com/oarkflow/pswin"
)

// Receiver decodes gateway callbacks and hands the normalized objects to the
// host's dispatch hooks. One Receiver serves every provider in the registry;
// callbacks carry the provider name in their path.
type Receiver struct {
	registry  *pswin.Registry
	onMessage pswin.MessageHandler
	onStatus  pswin.StatusHandler
}

func New(registry *pswin.Registry, onMessage pswin.MessageHandler, onStatus pswin.StatusHandler) *Receiver {
	return &Receiver{registry: registry, onMessage: onMessage, onStatus: onStatus}
}

// Register mounts the callback routes under prefix. The gateway may submit
// either GET with a query string or a form-encoded POST, so every route
// accepts both.
func (r *Receiver) Register(app fiber.Router, prefix string) {
	group := app.Group(prefix)
	group.Get("/:provider/im", r.handleMessage)
	group.Post("/:provider/im", r.handleMessage)
	group.Get("/:provider/status", r.handleStatus)
	group.Post("/:provider/status", r.handleStatus)
}

// fields collects query and form parameters into one flat set. fasthttp has
// already percent-decoded the values to their raw bytes, which keeps the
// gateway's single-byte escapes (e.g. %e5) intact for the repertoire decoder.
func (r *Receiver) fields(c *fiber.Ctx) Fields {
	f := make(Fields)
	c.Request().URI().QueryArgs().VisitAll(func(key, val []byte) {
		f[string(key)] = string(val)
	})
	c.Request().PostArgs().VisitAll(func(key, val []byte) {
		f[string(key)] = string(val)
	})
	return f
}

func (r *Receiver) handleMessage(c *fiber.Ctx) error {
	name := c.Params("provider")
	if _, ok := r.registry.Get(name); !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}
	id := xid.New().String()
	msg, err := DecodeMessage(r.fields(c), name)
	if err != nil {
		// still 200, or the gateway keeps redelivering the same broken payload
		log.Warn().Str("callback_id", id).Str("provider", name).Err(err).Msg("Dropping malformed message callback")
		return c.SendStatus(fiber.StatusOK)
	}
	if r.onMessage != nil {
		r.onMessage(msg)
	}
	log.Info().Str("callback_id", id).Str("provider", name).Str("src", msg.Src).Msg("Inbound message dispatched")
	return c.SendStatus(fiber.StatusOK)
}

func (r *Receiver) handleStatus(c *fiber.Ctx) error {
	name := c.Params("provider")
	if _, ok := r.registry.Get(name); !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}
	id := xid.New().String()
	st, err := DecodeStatus(r.fields(c), name)
	if err != nil {
		log.Warn().Str("callback_id", id).Str("provider", name).Err(err).Msg("Dropping malformed status callback")
		return c.SendStatus(fiber.StatusOK)
	}
	if r.onStatus != nil {
		r.onStatus(st)
	}
	log.Info().Str("callback_id", id).Str("provider", name).Str("msg_id", st.MsgID).Str("state", st.State.String()).Msg("Status report dispatched")
	return c.SendStatus(fiber.StatusOK)
}
