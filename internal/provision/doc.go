// Package provision applies a declarative YAML plan against an admin API.
//
// A plan names a realm and the roles, clients, groups and users that should
// exist in it. Apply walks the plan with find-or-create semantics, so
// applying the same plan twice is a no-op: entities that already exist are
// reused, and role grants only add the roles the target is missing.
package provision
