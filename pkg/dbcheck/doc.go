// Package dbcheck runs the existence checks declared on form fields.
//
// A check counts the records of a model that match a query and fails when
// the count contradicts what the check expects:
//
//	itDoesNotExist  fails when a record matches ("{_this}:{this} already exists")
//	itExists        fails when nothing matches ("{_this}:{this} does not exist")
//
// The query is the check's explicit query or the field value keyed by the
// field name converted to the checker's CaseStyle. Counting is delegated to
// a Counter. The package ships counters for MongoDB, PostgreSQL, Redis sets,
// OpenSearch and an in-memory store:
//
//	db, err := dbcheck.ConnectMongo(ctx, cfg)
//	checker := dbcheck.New(dbcheck.NewMongoCounter(db), dbcheck.WithCaseStyle(dbcheck.SnakeCase))
//	msg, err := checker.Run(ctx, rule, "john@example.com")
//
// NewCachedCounter wraps any Counter with a small LRU cache of counts, for
// lookups that repeat across submissions.
//
// Connection settings load from the environment through the env tags on
// MongoConfig, PostgresConfig, RedisConfig and OpenSearchConfig.
package dbcheck
