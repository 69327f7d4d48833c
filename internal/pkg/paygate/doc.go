// Package paygate wraps the external card-payment provider.
//
// It exposes transaction initialization, verification by reference, and
// webhook signature checks. Amounts cross this boundary in the
// currency's minor unit.
package paygate
