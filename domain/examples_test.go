package domain_test

import (
	"fmt"

	"github.com/alextanhongpin/address/domain"
	"github.com/alextanhongpin/address/options"
	"github.com/alextanhongpin/address/tlds"
)

func ExampleIsValid() {
	domains := []string{
		"iana.org",
		"nominet.org.uk",
		"bücher.de",
		"com",
		"example..com",
		"_dmarc.example.com",
	}

	for _, d := range domains {
		fmt.Printf("%-20s: %t\n", d, domain.IsValid(d))
	}
	// Output:
	// iana.org            : true
	// nominet.org.uk      : true
	// bücher.de           : true
	// com                 : false
	// example..com        : false
	// _dmarc.example.com  : false
}

// Example: DNS records for mail authentication
func ExampleAnalyze() {
	opts := []options.Option{
		options.WithAllowUnderscore(true),
		options.WithAllowFullyQualified(true),
		options.WithTLDs(tlds.DefaultExcept("com")),
	}

	fmt.Println(domain.Analyze("_dmarc.example.org.", opts...) == nil)
	fmt.Println(domain.Analyze("_dmarc.example.com.", opts...).Code)
	fmt.Println(domain.Analyze("_dmarc.example.com.", opts...).Message)
	// Output:
	// true
	// DOMAIN_FORBIDDEN_TLDS
	// Domain uses forbidden TLD
}

func ExampleToASCII() {
	fmt.Println(domain.ToASCII("bücher.de"))
	fmt.Println(domain.ToASCII("游戏"))
	fmt.Println(domain.ToASCII("iana.org"))
	// Output:
	// xn--bcher-kva.de
	// xn--unup4y
	// iana.org
}
