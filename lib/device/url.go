package device

import (
	"fmt"
	"github.com/ValentinKolb/dIO/rpc/common"
	"github.com/ValentinKolb/dIO/rpc/transport"
	"path/filepath"
)

// URLFactory maps a location and a protocol to an ipc endpoint below Root.
// It holds no state besides Root and is shared by value.
type URLFactory struct {
	Root string
}

// NewURLFactory creates an address scheme rooted at the given socket directory
func NewURLFactory(root string) URLFactory {
	return URLFactory{Root: root}
}

// SocketDir returns the directory holding the sockets of a location
func (f URLFactory) SocketDir(loc common.Location) (string, error) {
	if err := loc.Validate(); err != nil {
		return "", err
	}
	return filepath.Join(f.Root, loc.Category.String(), loc.Group), nil
}

// BindURL returns the endpoint a socket with protocol p binds to for loc
func (f URLFactory) BindURL(loc common.Location, p transport.Protocol) (string, error) {
	return f.makeURL(loc, p)
}

// ConnectURL returns the endpoint a socket with protocol p connects to for loc.
// It is the bind url of the opposite protocol, so both sides meet.
func (f URLFactory) ConnectURL(loc common.Location, p transport.Protocol) (string, error) {
	return f.makeURL(loc, p.Opposite())
}

func (f URLFactory) makeURL(loc common.Location, p transport.Protocol) (string, error) {
	if !p.Valid() {
		return "", fmt.Errorf("%w: invalid protocol %d", common.ErrAddressResolution, p)
	}
	dir, err := f.SocketDir(loc)
	if err != nil {
		return "", err
	}
	return "ipc://" + dir + "/" + loc.Name + "." + p.String(), nil
}
