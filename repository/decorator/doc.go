// Package decorator provides forwarding base types for every contract in
// the repository package, in both blocking and non-blocking form.
//
// Each base wraps one inner instance and forwards every operation to it
// unchanged, member by member. On its own a base is behaviorally transparent;
// its purpose is embedding. A custom decorator embeds the base for its
// contract and overrides only the operations it cares about, while the base
// keeps forwarding the rest:
//
//	type auditingCommand struct {
//		*decorator.Command[string, Customer]
//		audit repository.Logger
//	}
//
//	func (c *auditingCommand) Remove(ctx context.Context, customer Customer) error {
//		c.audit.Info("removing customer", "id", customer.Identity())
//		return c.Command.Remove(ctx, customer)
//	}
//
// Every base exposes Unwrap for access to the wrapped instance, and every
// constructor rejects a nil inner with repository.ErrNilInner.
package decorator
