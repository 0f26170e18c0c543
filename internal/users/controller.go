package users

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jkberiksson/bsv-edutask/internal/models"
	"github.com/jkberiksson/bsv-edutask/pkg/logger"
	"github.com/jkberiksson/bsv-edutask/pkg/metrics"
)

var log = logger.Named("users")

// UserDAO is the persistence capability the controller depends on.
// *dao.DAO satisfies it.
type UserDAO interface {
	Create(ctx context.Context, doc models.Document) (models.Document, error)
	Find(ctx context.Context, filter models.Document) ([]models.Document, error)
}

// Outcome classifies an email lookup.
type Outcome int

const (
	LookupNone Outcome = iota
	LookupOne
	LookupMultiple
)

func (o Outcome) String() string {
	switch o {
	case LookupOne:
		return "one"
	case LookupMultiple:
		return "multiple"
	}
	return "none"
}

// Lookup is the structured result of LookupUserByEmail. User is nil for
// LookupNone and the first match for LookupMultiple.
type Lookup struct {
	Outcome Outcome
	User    models.Document
	Matches int
}

// Controller implements user lookups on top of an injected DAO.
type Controller struct {
	dao UserDAO
	out io.Writer
}

type Option func(*Controller)

// WithOutput sets where lookup diagnostics are printed (default os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(c *Controller) { c.out = w }
}

func NewController(d UserDAO, opts ...Option) *Controller {
	c := &Controller{dao: d, out: os.Stdout}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Create stores a new user document through the DAO.
func (c *Controller) Create(ctx context.Context, doc models.Document) (models.Document, error) {
	return c.dao.Create(ctx, doc)
}

// GetUserByEmail returns the user registered with email, or nil when there is
// none. When several users share the address the first one is returned.
func (c *Controller) GetUserByEmail(ctx context.Context, email string) (models.Document, error) {
	res, err := c.LookupUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return res.User, nil
}

// LookupUserByEmail is GetUserByEmail with the outcome made explicit.
// Store errors are returned as-is.
func (c *Controller) LookupUserByEmail(ctx context.Context, email string) (Lookup, error) {
	if err := ValidateEmail(email); err != nil {
		metrics.UserLookups.WithLabelValues("invalid").Inc()
		return Lookup{}, err
	}

	found, err := c.dao.Find(ctx, models.Document{"email": email})
	if err != nil {
		metrics.UserLookups.WithLabelValues("error").Inc()
		log.Debugf("lookup %s failed: %v", maskEmail(email), err)
		return Lookup{}, err
	}

	res := Lookup{Matches: len(found)}
	switch len(found) {
	case 0:
		fmt.Fprintf(c.out, "Warning: no user found with mail %s\n", email)
		res.Outcome = LookupNone
	case 1:
		res.Outcome = LookupOne
		res.User = found[0]
	default:
		fmt.Fprintf(c.out, "Error: more than one user found with mail %s\n", email)
		res.Outcome = LookupMultiple
		res.User = found[0]
	}
	metrics.UserLookups.WithLabelValues(res.Outcome.String()).Inc()
	log.Debugf("lookup %s: %d match(es)", maskEmail(email), res.Matches)
	return res, nil
}
