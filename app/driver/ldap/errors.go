package ldap

import (
	"errors"
	"net"

	"github.com/go-ldap/ldap/v3"
)

// isUnavailable reports whether the error indicates the directory cannot be
// reached or serviced right now, as opposed to rejecting the request.
func isUnavailable(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return ldap.IsErrorWithCode(err, ldap.ErrorNetwork) ||
		ldap.IsErrorWithCode(err, ldap.LDAPResultServerDown) ||
		ldap.IsErrorWithCode(err, ldap.LDAPResultUnavailable) ||
		ldap.IsErrorWithCode(err, ldap.LDAPResultBusy) ||
		ldap.IsErrorWithCode(err, ldap.LDAPResultConnectError)
}
