package nets

import (
	"net"
	"testing"

	"github.com/HishamYahya/gollm/configs"
	"github.com/HishamYahya/gollm/modes"
	"github.com/reusee/dscope"
)

func TestDialerDirect(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer listener.Close()
	go func() {
		conn, err := listener.Accept()
		if err == nil {
			conn.Close()
		}
	}()

	loader := configs.NewLoader(nil, "")
	proxyAddr := ProxyAddr("")
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		&loader,
		&proxyAddr,
	).Call(func(
		dialer Dialer,
	) {
		conn, err := dialer.DialContext(t.Context(), "tcp", listener.Addr().String())
		if err != nil {
			t.Fatal(err)
		}
		conn.Close()
	})
}

func TestGetProxyDialerBadURL(t *testing.T) {
	loader := configs.NewLoader(nil, "")
	proxyAddr := ProxyAddr("://bad")
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		&loader,
		&proxyAddr,
	).Call(func(
		get GetProxyDialer,
	) {
		if _, err := get(); err == nil {
			t.Fatal("expecting error")
		}
	})
}
