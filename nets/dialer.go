package nets

import (
	"context"
	"net"
)

type Dialer interface {
	Dial(network, addr string) (net.Conn, error)
	DialContext(ctx context.Context, network, addr string) (net.Conn, error)
}

type DialerFunc func(context.Context, string, string) (net.Conn, error)

var _ Dialer = DialerFunc(nil)

func (d DialerFunc) DialContext(ctx context.Context, network string, addr string) (net.Conn, error) {
	return d(ctx, network, addr)
}

func (d DialerFunc) Dial(network string, addr string) (net.Conn, error) {
	return d(context.Background(), network, addr)
}

func (Module) Dialer(
	getProxyDialer GetProxyDialer,
) Dialer {
	return DialerFunc(func(ctx context.Context, network, addr string) (net.Conn, error) {
		proxyDialer, err := getProxyDialer()
		if err != nil {
			return nil, err
		}
		return proxyDialer.DialContext(ctx, network, addr)
	})
}
