package registry

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dmitrymomot/tenantrouter/pkg/tenant"
)

// MongoSource reads tenant descriptors from a MongoDB collection, for
// platforms that keep their catalog in a document store instead of Postgres.
type MongoSource struct {
	coll *mongo.Collection
	dec  Decrypter
}

// NewMongoSource creates a source over an existing collection. The caller
// owns the client lifecycle.
func NewMongoSource(coll *mongo.Collection, opts ...SourceOption) *MongoSource {
	cfg := newSourceConfig(opts)
	return &MongoSource{coll: coll, dec: cfg.dec}
}

// mongoTenant is the document shape; _id holds the tenant UUID as a string.
type mongoTenant struct {
	ID         string         `bson:"_id"`
	Subdomain  string         `bson:"subdomain"`
	Name       string         `bson:"name"`
	Mode       string         `bson:"mode"`
	Status     string         `bson:"status"`
	SchemaName string         `bson:"schema_name,omitempty"`
	Database   *mongoDatabase `bson:"database,omitempty"`
	CreatedAt  time.Time      `bson:"created_at"`
}

type mongoDatabase struct {
	Host              string `bson:"host"`
	Port              int    `bson:"port"`
	Name              string `bson:"name"`
	Username          string `bson:"username"`
	PasswordEncrypted string `bson:"password_encrypted,omitempty"`
	SSLMode           string `bson:"ssl_mode,omitempty"`
	PoolSize          int32  `bson:"pool_size,omitempty"`
}

// GetByIdentifier matches the identifier against _id and subdomain in one
// query.
func (s *MongoSource) GetByIdentifier(ctx context.Context, identifier string) (*tenant.Tenant, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, tenant.ErrInvalidIdentifier
	}

	filter := bson.M{"$or": bson.A{
		bson.M{"_id": identifier},
		bson.M{"subdomain": identifier},
	}}

	var doc mongoTenant
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, errors.Join(ErrSourceUnavailable, err)
	}

	t, err := doc.toTenant(s.dec)
	if err != nil {
		return nil, err
	}
	if !t.Active() {
		return nil, errInactive(t)
	}
	return t, nil
}

func (doc mongoTenant) toTenant(dec Decrypter) (*tenant.Tenant, error) {
	id, err := parseTenantID(doc.ID)
	if err != nil {
		return nil, err
	}
	mode, err := tenant.ParseMode(doc.Mode)
	if err != nil {
		return nil, err
	}

	t := &tenant.Tenant{
		ID:         id,
		Subdomain:  doc.Subdomain,
		Name:       doc.Name,
		Mode:       mode,
		Status:     doc.Status,
		SchemaName: doc.SchemaName,
		CreatedAt:  doc.CreatedAt,
	}

	if doc.Database != nil {
		cfg := &tenant.DatabaseConfig{
			Host:     doc.Database.Host,
			Port:     doc.Database.Port,
			Name:     doc.Database.Name,
			Username: doc.Database.Username,
			SSLMode:  doc.Database.SSLMode,
			PoolSize: doc.Database.PoolSize,
		}
		if cfg.Port == 0 {
			cfg.Port = 5432
		}
		if doc.Database.PasswordEncrypted != "" {
			plain, err := dec.DecryptString(doc.Database.PasswordEncrypted)
			if err != nil {
				return nil, errors.Join(ErrDecryptFailed, err)
			}
			cfg.Password = plain
		}
		t.Database = cfg
	}

	return t, nil
}
