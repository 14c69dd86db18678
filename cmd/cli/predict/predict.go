package predict

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/crucial707/loanapp/cmd/cli/client"
	"github.com/crucial707/loanapp/cmd/cli/config"
	"github.com/crucial707/loanapp/cmd/cli/output"
	relay "github.com/crucial707/loanapp/internal/predict"
	"github.com/spf13/cobra"
)

// Decision is the --json output of the predict command.
type Decision struct {
	Input    map[string]string `json:"input"`
	Eligible bool              `json:"eligible"`
	Message  string            `json:"message"`
}

// InitPredict registers the predict command on the root command.
func InitPredict(rootCmd *cobra.Command) {
	rootCmd.AddCommand(predictCmd())
}

func predictCmd() *cobra.Command {
	var (
		categorical = map[string]*string{}
		numeric     = map[string]*float64{}
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Check loan eligibility for an application",
		Long: `Submit the eleven application fields to the prediction form and print the decision.
The stored login token, when present, is sent along; it is not required.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := url.Values{}
			for name, v := range categorical {
				form.Set(name, *v)
			}
			for name, v := range numeric {
				form.Set(name, strconv.FormatFloat(*v, 'f', -1, 64))
			}

			path := "/predict"
			if token, err := config.LoadToken(); err == nil {
				path += "?token=" + url.QueryEscape(token)
			}

			resp, err := client.PostForm(path, form)
			if err != nil {
				return fmt.Errorf("failed to predict: %w", err)
			}
			if resp.Status != http.StatusOK {
				return fmt.Errorf("failed to predict: %w", resp.Err())
			}

			d := Decision{Input: make(map[string]string, len(form))}
			for _, name := range relay.FieldNames {
				d.Input[name] = form.Get(name)
			}
			switch {
			case strings.Contains(resp.Body, relay.EligibleMessage):
				d.Eligible, d.Message = true, relay.EligibleMessage
			case strings.Contains(resp.Body, relay.IneligibleMessage):
				d.Message = relay.IneligibleMessage
			default:
				return fmt.Errorf("failed to predict: no decision in response")
			}

			if asJSON {
				return output.RenderJSON(cmd.OutOrStdout(), d)
			}
			rows := make([][]interface{}, 0, len(relay.FieldNames)+1)
			for _, name := range relay.FieldNames {
				rows = append(rows, []interface{}{name, d.Input[name]})
			}
			rows = append(rows, []interface{}{"decision", d.Message})
			output.RenderTable(cmd.OutOrStdout(), []string{"Field", "Value"}, rows)
			return nil
		},
	}

	for _, name := range []string{"gender", "married", "dependents", "education", "self_employed", "property_area"} {
		categorical[name] = cmd.Flags().String(flagName(name), "", name)
		_ = cmd.MarkFlagRequired(flagName(name))
	}
	for _, name := range []string{"applicant_income", "coapplicant_income", "loan_amount", "loan_amount_term", "credit_history"} {
		numeric[name] = cmd.Flags().Float64(flagName(name), 0, name)
		_ = cmd.MarkFlagRequired(flagName(name))
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the decision as JSON")

	return cmd
}

// flagName turns a form field into its flag spelling (loan_amount -> loan-amount).
func flagName(field string) string {
	return strings.ReplaceAll(field, "_", "-")
}
