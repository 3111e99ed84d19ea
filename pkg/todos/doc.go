// Package todos provides ownership-scoped todo CRUD.
//
// Every operation on a single todo goes through OwnedRef, which carries
// the id together with the requesting owner's id, so a todo belonging to
// another user is indistinguishable from one that does not exist. Partial
// updates pass through SanitizePatch, which enforces the {text, completed}
// whitelist and derives completedAt.
package todos
