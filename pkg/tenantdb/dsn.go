package tenantdb

import (
	"net"
	"net/url"
	"strconv"

	"github.com/dmitrymomot/tenantrouter/pkg/tenant"
)

const defaultPort = 5432

// poolKey identifies a physical pool target. Shared tenants all map to the
// shared cluster's key, so they collapse onto one pool. Dedicated tenants
// key on their own host and database name.
func poolKey(mode tenant.Mode, host, database string) string {
	return string(mode) + "|" + host + "|" + database
}

// buildDSN renders a dedicated tenant's database coordinates as a postgres
// URL. Credentials are escaped, so passwords may contain any characters.
func buildDSN(db *tenant.DatabaseConfig) string {
	port := db.Port
	if port <= 0 {
		port = defaultPort
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(db.Host, strconv.Itoa(port)),
		Path:   "/" + db.Name,
	}
	if db.Username != "" {
		if db.Password != "" {
			u.User = url.UserPassword(db.Username, db.Password)
		} else {
			u.User = url.User(db.Username)
		}
	}
	if db.SSLMode != "" {
		q := url.Values{}
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}
	return u.String()
}
