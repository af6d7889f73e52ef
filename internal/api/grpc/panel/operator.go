package panel

import (
	"context"

	"google.golang.org/grpc/metadata"
)

// Metadata keys carrying the operator of a panel client.
const (
	hostnameKey = "x-operator-hostname"
	usernameKey = "x-operator-username"
)

// Operator identifies who is at a panel client.
type Operator struct {
	// Hostname is the client machine name.
	Hostname string
	// Username is the login name on the client machine.
	Username string
}

// String formats the operator as user@host.
func (o *Operator) String() string {
	if o == nil {
		return "unknown"
	}

	return o.Username + "@" + o.Hostname
}

// OutgoingContext attaches the operator to calls made with the returned context.
func OutgoingContext(ctx context.Context, op *Operator) context.Context {
	if op == nil {
		return ctx
	}

	return metadata.AppendToOutgoingContext(ctx, hostnameKey, op.Hostname, usernameKey, op.Username)
}

// OperatorFromContext returns the operator sent by the client, or nil.
func OperatorFromContext(ctx context.Context) *Operator {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil
	}

	hosts, users := md.Get(hostnameKey), md.Get(usernameKey)
	if len(hosts) == 0 && len(users) == 0 {
		return nil
	}

	op := new(Operator)
	if len(hosts) > 0 {
		op.Hostname = hosts[0]
	}

	if len(users) > 0 {
		op.Username = users[0]
	}

	return op
}
