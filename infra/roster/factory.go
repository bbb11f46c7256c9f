package roster

import (
	"context"
	"time"

	"github.com/kilianp07/solarsim/core/factory"
	coreroster "github.com/kilianp07/solarsim/core/roster"
)

// DefaultSQLiteDSN is used when the sqlite store has no dsn configured.
const DefaultSQLiteDSN = "file:solarsim.db"

// init registers the persistent roster stores.
func init() {
	_ = coreroster.RegisterStore("sqlite", func(conf map[string]any) (coreroster.Store, error) {
		var c SQLConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.DSN == "" {
			c.DSN = DefaultSQLiteDSN
		}
		return NewSQLStore(DialectSQLite, c.DSN, nil)
	})

	_ = coreroster.RegisterStore("postgres", func(conf map[string]any) (coreroster.Store, error) {
		var c SQLConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewSQLStore(DialectPostgres, c.DSN, nil)
	})

	_ = coreroster.RegisterStore("redis", func(conf map[string]any) (coreroster.Store, error) {
		var c RedisConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return NewRedisStore(ctx, c, nil)
	})
}
