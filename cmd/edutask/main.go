// Command edutask runs user lookups and document creation against the edutask
// MongoDB database.
//
//	edutask user -email jane@doe.se
//	edutask create -collection task -doc '{"title":"Hello","description":"World"}'
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jkberiksson/bsv-edutask/internal/config"
	"github.com/jkberiksson/bsv-edutask/internal/dao"
	"github.com/jkberiksson/bsv-edutask/internal/database"
	"github.com/jkberiksson/bsv-edutask/internal/models"
	"github.com/jkberiksson/bsv-edutask/internal/users"
	"github.com/jkberiksson/bsv-edutask/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
)

// opener returns a DAO for the named collection. Writers ask for provisioning so
// the validator and unique indexes are in place; lookups only need read access.
type opener func(ctx context.Context, collection string, provision bool) (*dao.DAO, error)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "edutask: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Log.Level)

	ctx := context.Background()
	client, err := database.ConnectWithRetry(ctx, database.ConnectMongo, cfg.MongoDB.URI, cfg.MongoDB.Timeout, cfg.MongoDB.ConnectAttempts, time.Second)
	if err != nil {
		fmt.Fprintf(os.Stderr, "edutask: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	db := client.Database(cfg.MongoDB.Database)
	open := func(ctx context.Context, collection string, provision bool) (*dao.DAO, error) {
		if !provision {
			return dao.NewWithCollection(collection, dao.NewMongoCollection(db.Collection(collection))), nil
		}
		return dao.New(ctx, db, collection)
	}
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, open)
	if code != 0 {
		_ = client.Disconnect(ctx)
		os.Exit(code)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, open opener) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}
	var err error
	switch args[0] {
	case "user":
		err = runUser(ctx, args[1:], stdout, stderr, open)
	case "create":
		err = runCreate(ctx, args[1:], stdout, stderr, open)
	case "-h", "-help", "--help", "help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "edutask: unknown command %q\n", args[0])
		usage(stderr)
		return 2
	}
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "edutask: %v\n", err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage:")
	fmt.Fprintln(w, "  edutask user -email <address>")
	fmt.Fprintln(w, "  edutask create -collection <name> -doc <extended json>")
}

func runUser(ctx context.Context, args []string, stdout, stderr io.Writer, open opener) error {
	fs := flag.NewFlagSet("user", flag.ContinueOnError)
	fs.SetOutput(stderr)
	email := fs.String("email", "", "email address to look up")
	if err := fs.Parse(args); err != nil {
		return err
	}

	d, err := open(ctx, "user", false)
	if err != nil {
		return err
	}
	u, err := users.NewController(d, users.WithOutput(stdout)).GetUserByEmail(ctx, *email)
	if err != nil {
		return err
	}
	if u == nil {
		return nil
	}
	user, err := models.UserFromDocument(u)
	if err != nil {
		return err
	}
	b, err := json.Marshal(user)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, string(b))
	return err
}

func runCreate(ctx context.Context, args []string, stdout, stderr io.Writer, open opener) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(stderr)
	collection := fs.String("collection", "", "collection to insert into (user, task, todo, video)")
	raw := fs.String("doc", "", "document as MongoDB extended JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *collection == "" || *raw == "" {
		return errors.New("create: -collection and -doc are required")
	}

	var doc models.Document
	if err := bson.UnmarshalExtJSON([]byte(*raw), false, &doc); err != nil {
		return fmt.Errorf("parse -doc: %w", err)
	}
	d, err := open(ctx, *collection, true)
	if err != nil {
		return err
	}
	created, err := d.Create(ctx, doc)
	if err != nil {
		return err
	}
	return printDocument(stdout, created)
}

func printDocument(w io.Writer, d models.Document) error {
	b, err := bson.MarshalExtJSON(d, false, false)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
