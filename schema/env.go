package schema

import (
	"fmt"
	"strings"
)

// Recognized environment descriptor fields. These are the exact keys the
// test environment reports in its log output and in the dotenv file.
const (
	FieldSchedulerGRPCURI = "scheduler_grpc_uri"
	FieldGRPCWebProxyURI  = "grpc_web_proxy_uri"
	FieldBitcoindRPCURI   = "bitcoind_rpc_uri"
	FieldCertPath         = "cert_path"
	FieldCACrtPath        = "ca_crt_path"
	FieldNobodyCrtPath    = "nobody_crt_path"
	FieldNobodyKeyPath    = "nobody_key_path"
)

// DescriptorFields lists the recognized fields in report order.
var DescriptorFields = []string{
	FieldSchedulerGRPCURI,
	FieldGRPCWebProxyURI,
	FieldBitcoindRPCURI,
	FieldCertPath,
	FieldCACrtPath,
	FieldNobodyCrtPath,
	FieldNobodyKeyPath,
}

// EnvDescriptor is the set of endpoints and paths the test environment
// exposes to dependent processes. It is assembled once per run and
// read-only afterwards.
type EnvDescriptor struct {
	SchedulerGRPCURI string
	GRPCWebProxyURI  string
	BitcoindRPCURI   string
	CertPath         string
	CACrtPath        string
	NobodyCrtPath    string
	NobodyKeyPath    string
}

// Get returns the value for a recognized field name.
func (d EnvDescriptor) Get(field string) (string, error) {
	switch field {
	case FieldSchedulerGRPCURI:
		return d.SchedulerGRPCURI, nil
	case FieldGRPCWebProxyURI:
		return d.GRPCWebProxyURI, nil
	case FieldBitcoindRPCURI:
		return d.BitcoindRPCURI, nil
	case FieldCertPath:
		return d.CertPath, nil
	case FieldCACrtPath:
		return d.CACrtPath, nil
	case FieldNobodyCrtPath:
		return d.NobodyCrtPath, nil
	case FieldNobodyKeyPath:
		return d.NobodyKeyPath, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

// Set assigns a recognized field by name. Unknown fields are rejected so
// log scanning cannot smuggle arbitrary keys into the descriptor.
func (d *EnvDescriptor) Set(field, value string) error {
	switch field {
	case FieldSchedulerGRPCURI:
		d.SchedulerGRPCURI = value
	case FieldGRPCWebProxyURI:
		d.GRPCWebProxyURI = value
	case FieldBitcoindRPCURI:
		d.BitcoindRPCURI = value
	case FieldCertPath:
		d.CertPath = value
	case FieldCACrtPath:
		d.CACrtPath = value
	case FieldNobodyCrtPath:
		d.NobodyCrtPath = value
	case FieldNobodyKeyPath:
		d.NobodyKeyPath = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// MissingFields returns the recognized fields that are still empty.
func (d EnvDescriptor) MissingFields() []string {
	var missing []string
	for _, field := range DescriptorFields {
		value, _ := d.Get(field)
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// Complete reports whether every recognized field is non-empty.
func (d EnvDescriptor) Complete() bool {
	return len(d.MissingFields()) == 0
}

// Validate fails with a configuration error when any required field is
// unresolved.
func (d EnvDescriptor) Validate() error {
	missing := d.MissingFields()
	if len(missing) == 0 {
		return nil
	}
	return NewError(KindConfiguration, "descriptor validate",
		fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", ")))
}

// Map returns the descriptor as a field→value map in report order. The
// returned map is a copy; mutating it does not affect the descriptor.
func (d EnvDescriptor) Map() map[string]string {
	out := make(map[string]string, len(DescriptorFields))
	for _, field := range DescriptorFields {
		value, _ := d.Get(field)
		out[field] = value
	}
	return out
}

// DefaultIdentity is the shared developer identity every environment
// provisions when no other identity is configured.
const DefaultIdentity = "nobody"

// Identity is a certificate/key pair scoped to a named principal.
type Identity struct {
	Name    string
	CrtPath string
	KeyPath string
}

// NobodyIdentity returns the default developer identity from a descriptor.
func (d EnvDescriptor) NobodyIdentity() Identity {
	return Identity{
		Name:    DefaultIdentity,
		CrtPath: d.NobodyCrtPath,
		KeyPath: d.NobodyKeyPath,
	}
}
