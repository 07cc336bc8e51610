package subscription

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/amora/amoractl/internal/backend/client"
	"github.com/amora/amoractl/internal/cmd"
	rescommon "github.com/amora/amoractl/internal/cmd/root/resources/common"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"sigs.k8s.io/yaml"
)

const (
	nameFlagName        = "name"
	descriptionFlagName = "description"
	priceFlagName       = "price"
	currencyFlagName    = "currency"
	intervalFlagName    = "interval"
	featureFlagName     = "feature"

	defaultCurrency = "USD"
)

// addInputFlags registers the plan attribute flags shared by create and
// update. Values given on the command line override a --file document.
func addInputFlags(c *cobra.Command) {
	c.Flags().StringP(rescommon.FileFlagName, rescommon.FileFlagShort, "",
		`Read the plan from a YAML or JSON document ("-" reads stdin).`)
	c.Flags().String(nameFlagName, "", "Plan name shown to members.")
	c.Flags().String(descriptionFlagName, "", "Plan description.")
	c.Flags().String(priceFlagName, "", `Price per interval as a decimal amount, e.g. "9.99".`)
	c.Flags().String(currencyFlagName, defaultCurrency, "3 letter ISO currency code.")
	c.Flags().Var(cmd.NewEnum(client.BillingIntervals, string(client.Monthly)), intervalFlagName,
		fmt.Sprintf("Billing interval.\n- Allowed    : [ %s ]", strings.Join(client.BillingIntervals, "|")))
	c.Flags().StringSlice(featureFlagName, nil, "Feature included in the plan. Repeat for several.")
	c.Flags().String(rescommon.StatusFlagName, "",
		fmt.Sprintf("Initial plan status.\n- Allowed    : [ %s ]", strings.Join(client.PlanStatuses, "|")))
}

// readPlanInput builds a PlanInput starting from base, then the --file
// document, then every flag the user set.
func readPlanInput(c *cobra.Command, in io.Reader, base client.PlanInput) (client.PlanInput, error) {
	out := base
	flags := c.Flags()

	if path, _ := flags.GetString(rescommon.FileFlagName); strings.TrimSpace(path) != "" {
		doc, err := readDocument(path, in)
		if err != nil {
			return out, err
		}
		if err := yaml.UnmarshalStrict(doc, &out); err != nil {
			return out, fmt.Errorf("invalid plan document %s: %w", path, err)
		}
	}

	var err error
	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case nameFlagName:
			out.Name = f.Value.String()
		case descriptionFlagName:
			out.Description = f.Value.String()
		case priceFlagName:
			out.PriceCents, err = parsePrice(f.Value.String())
		case currencyFlagName:
			out.Currency = strings.ToUpper(strings.TrimSpace(f.Value.String()))
		case intervalFlagName:
			out.Interval = client.BillingInterval(f.Value.String())
		case featureFlagName:
			out.Features, err = flags.GetStringSlice(featureFlagName)
		case rescommon.StatusFlagName:
			out.Status = client.PlanStatus(strings.ToLower(f.Value.String()))
		}
	})
	return out, err
}

func readDocument(path string, in io.Reader) ([]byte, error) {
	if path == "-" {
		if in == nil {
			return nil, fmt.Errorf("no input stream to read the plan from")
		}
		return io.ReadAll(in)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// parsePrice converts a decimal amount with at most two fraction digits to
// cents.
func parsePrice(s string) (int64, error) {
	s = strings.TrimSpace(s)
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("price %q has no digits", s)
	}
	if strings.HasPrefix(whole, "-") {
		return 0, fmt.Errorf("price %q cannot be negative", s)
	}
	if !isDigits(whole) || !isDigits(frac) {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("price %q has more than two decimals", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	if whole == "" {
		whole = "0"
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units > math.MaxInt64/100 {
		return 0, fmt.Errorf("price %q is out of range", s)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	if units*100 > math.MaxInt64-cents {
		return 0, fmt.Errorf("price %q is out of range", s)
	}
	return units*100 + cents, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func inputFromPlan(p client.SubscriptionPlan) client.PlanInput {
	return client.PlanInput{
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Currency:    p.Currency,
		Interval:    p.Interval,
		Status:      p.Status,
		Features:    p.Features,
	}
}
