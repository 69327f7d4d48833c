// Package mail defines the outgoing email contract.
//
// Use cases depend on the Mail interface and the Message payload only;
// the concrete delivery path (SMTP, provider API) is an implementation
// detail kept inside this package.
package mail
