// Package migrations registers the schema migrations. Blank-import it from
// any binary or test that runs migration.Runner.
package migrations
