package analysis

import (
	"errors"

	"github.com/alextanhongpin/errors/causes"
	"github.com/alextanhongpin/errors/codes"
)

// Sentinels for programmer errors. Compare with errors.Is; the returned
// errors usually wrap these with the offending value.
//
// Each sentinel is a causes.Detail with the codes.BadRequest code and the
// catalog code as its kind.
var (
	ErrAddressNotString = usage(AddressNotString)
	ErrDomainNotString  = usage(DomainNotString)
	ErrTLDsBoolObj      = usage(TLDsBoolObj)
	ErrTLDsDenySet      = usage(TLDsDenySet)
	ErrTLDsAllow        = usage(TLDsAllow)
	ErrTLDsAllowSet     = usage(TLDsAllowSet)
)

func usage(code Code) error {
	return causes.New(codes.BadRequest, string(code), "%s", New(code).Message)
}

// UsageCode returns the catalog code of the usage fault in err's chain.
func UsageCode(err error) (Code, bool) {
	var c causes.Detail
	if !errors.As(err, &c) {
		return "", false
	}

	d := c.Detail()
	if d.Code() != codes.BadRequest {
		return "", false
	}

	code := Code(d.Kind())
	_, ok := catalog[code]
	return code, ok
}

// IsUsage reports whether err is a usage fault, as opposed to a problem with
// the data being analyzed.
func IsUsage(err error) bool {
	_, ok := UsageCode(err)
	return ok
}
