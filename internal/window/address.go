package window

import "net/url"

// ValidateAddress parses raw as an absolute address. Scheme and host are
// both required.
func ValidateAddress(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, &AddressError{Raw: raw, Reason: err.Error()}
	}
	if u.Scheme == "" {
		return nil, &AddressError{Raw: raw, Reason: "missing scheme"}
	}
	if u.Host == "" {
		return nil, &AddressError{Raw: raw, Reason: "missing host"}
	}
	return u, nil
}
