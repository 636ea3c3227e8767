package extract

import (
	"math"
	"testing"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
		ok   bool
	}{
		{
			name: "rupee symbol",
			text: "You paid ₹1,250.50 to Swiggy",
			want: 1250.50,
			ok:   true,
		},
		{
			name: "rs prefix with dot",
			text: "Rs. 450 debited for purchase at AMAZON on ICICI Card",
			want: 450,
			ok:   true,
		},
		{
			name: "rs prefix without dot",
			text: "Rs 99 spent at STARBUCKS",
			want: 99,
			ok:   true,
		},
		{
			name: "inr prefix",
			text: "INR 2,000.00 credited to your account",
			want: 2000,
			ok:   true,
		},
		{
			name: "debited by phrasing",
			text: "A/c XX123 debited by 540.25 on 12-05-24",
			want: 540.25,
			ok:   true,
		},
		{
			name: "credited with phrasing",
			text: "Your account credited with 1500",
			want: 1500,
			ok:   true,
		},
		{
			name: "named foreign currency",
			text: "USD 42.99 charged on your card",
			want: 42.99,
			ok:   true,
		},
		{
			name: "thousands separators stripped",
			text: "₹12,34,567 transferred",
			want: 1234567,
			ok:   true,
		},
		{
			name: "no amount",
			text: "Your OTP for login is ready",
			ok:   false,
		},
		{
			name: "empty text",
			text: "",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Amount(tt.text)
			if ok != tt.ok {
				t.Fatalf("Amount(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Amount(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestMerchant(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{
			name: "trf to refno",
			text: "A/c debited trf to RAMESH KUMAR Refno 4521",
			want: "RAMESH KUMAR",
			ok:   true,
		},
		{
			name: "to x dot ref",
			text: "Rs 300 sent to Blinkit.Ref no 99812",
			want: "Blinkit",
			ok:   true,
		},
		{
			name: "at x on date",
			text: "Spent Rs 220 at DOMINOS PIZZA on 14-02-25",
			want: "DOMINOS PIZZA",
			ok:   true,
		},
		{
			name: "towards x using",
			text: "Payment of Rs 1200 towards Airtel Postpaid using UPI",
			want: "Airtel Postpaid",
			ok:   true,
		},
		{
			name: "at x on bank",
			text: "Rs. 450 debited for purchase at AMAZON on ICICI Card",
			want: "AMAZON",
			ok:   true,
		},
		{
			name: "upi handle",
			text: "Paid via 98hemant@okaxis today",
			want: "98hemant@okaxis",
			ok:   true,
		},
		{
			name: "long names capped at fifty",
			text: "Paid to " + "VERYLONGMERCHANTNAME VERYLONGMERCHANTNAME VERYLONGMERCHANTNAME",
			want: "VERYLONGMERCHANTNAME VERYLONGMERCHANTNAME VERYLONG",
			ok:   true,
		},
		{
			name: "nothing to find",
			text: "1234 5678 9012",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Merchant(tt.text)
			if ok != tt.ok {
				t.Fatalf("Merchant(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Merchant(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestSender(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{
			name: "x sent you",
			text: "Anita Sharma sent you ₹500",
			want: "Anita Sharma",
			ok:   true,
		},
		{
			name: "x paid you",
			text: "Rohit paid you Rs 250",
			want: "Rohit",
			ok:   true,
		},
		{
			name: "from x",
			text: "₹1200 received from Acme Traders",
			want: "Acme Traders",
			ok:   true,
		},
		{
			name: "no sender",
			text: "₹1200 received",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Sender(tt.text)
			if ok != tt.ok {
				t.Fatalf("Sender(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Sender(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
