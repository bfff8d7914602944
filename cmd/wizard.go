package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/support/config"
	"github.com/stellar/go-stellar-sdk/support/log"

	cmdUtils "github.com/betpay/betpay-wallet/cmd/utils"
	"github.com/betpay/betpay-wallet/internal/betapi"
	"github.com/betpay/betpay-wallet/internal/bridge"
	"github.com/betpay/betpay-wallet/internal/crashtracker"
	"github.com/betpay/betpay-wallet/internal/data"
	"github.com/betpay/betpay-wallet/internal/registry"
	"github.com/betpay/betpay-wallet/internal/submission"
	"github.com/betpay/betpay-wallet/internal/ui"
	"github.com/betpay/betpay-wallet/internal/workflow"
)

type WizardOptions struct {
	TransactionType    data.TransactionType
	APIBaseURL         string
	APIToken           string
	CatalogCacheTTL    time.Duration
	SideEffectsMode    bridge.SideEffectsMode
	CrashTrackerClient crashtracker.CrashTrackerClient
	Out                io.Writer
}

type WizardServiceInterface interface {
	StartWizard(ctx context.Context, opts WizardOptions)
}

type WizardService struct{}

// Making sure that WizardService implements WizardServiceInterface
var _ WizardServiceInterface = (*WizardService)(nil)

func (s *WizardService) StartWizard(ctx context.Context, opts WizardOptions) {
	err := RunWizard(ctx, opts, ui.PromptUI{})
	if errors.Is(err, ui.ErrCancelled) {
		fmt.Fprintln(opts.Out, "Wizard cancelled.")
		os.Exit(ui.SIGINT)
	}
	if err != nil {
		log.Ctx(ctx).Fatalf("Error running the %s wizard: %s", opts.TransactionType, err.Error())
	}
}

// RunWizard loads the catalogs, drives one terminal wizard session with the given prompter and
// waits for any side effect still running once the user is back on the dashboard.
func RunWizard(ctx context.Context, opts WizardOptions, prompter ui.Prompter) error {
	apiClient, err := betapi.NewClient(betapi.ClientOptions{
		BaseURL: opts.APIBaseURL,
		Token:   opts.APIToken,
	})
	if err != nil {
		return fmt.Errorf("creating remote API client: %w", err)
	}

	sideEffects, err := bridge.NewBridge(opts.SideEffectsMode, bridge.WriterNotifier{Out: opts.Out}, nil)
	if err != nil {
		return fmt.Errorf("creating side effects bridge: %w", err)
	}
	if waiter, ok := sideEffects.(bridge.Waiter); ok {
		defer waiter.Wait()
	}

	coordinator, err := submission.StartSession(ctx, opts.TransactionType, registry.NewRegistry(apiClient, opts.CatalogCacheTTL), submission.CoordinatorOptions{
		Client:       apiClient,
		Bridge:       sideEffects,
		CrashTracker: opts.CrashTrackerClient,
	})
	if err != nil {
		return fmt.Errorf("starting %s session: %w", opts.TransactionType, err)
	}

	return workflow.Execute(ctx, workflow.Options{
		Coordinator: coordinator,
		Prompter:    prompter,
		Out:         opts.Out,
	})
}

type WizardCommand struct {
	TransactionType data.TransactionType
}

func (c *WizardCommand) commandName() string {
	if c.TransactionType == data.TransactionTypeWithdrawal {
		return "withdraw"
	}
	return strings.ToLower(string(c.TransactionType))
}

func (c *WizardCommand) Command(wizardService WizardServiceInterface) *cobra.Command {
	wizardOpts := WizardOptions{TransactionType: c.TransactionType}
	crashTrackerOptions := crashtracker.CrashTrackerOptions{}

	configOpts := config.ConfigOptions{
		cmdUtils.SideEffectsModeConfigOption(&wizardOpts.SideEffectsMode),
		cmdUtils.CrashTrackerTypeConfigOption(&crashTrackerOptions.CrashTrackerType),
	}

	cmd := &cobra.Command{
		Use:   c.commandName(),
		Short: fmt.Sprintf("Run the %s wizard in the terminal", strings.ToLower(string(c.TransactionType))),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.Parent().PersistentPreRun(cmd.Parent(), args)

			configOpts.Require()
			err := configOpts.SetValues()
			if err != nil {
				log.Fatalf("Error setting values of config options: %s", err.Error())
			}

			globalOptions.PopulateCrashTrackerOptions(&crashTrackerOptions)

			wizardOpts.APIBaseURL = globalOptions.APIBaseURL
			wizardOpts.APIToken = globalOptions.APIToken
			wizardOpts.CatalogCacheTTL = globalOptions.CatalogCacheTTL()
		},
		Run: func(cmd *cobra.Command, _ []string) {
			ctx := cmd.Context()

			crashTrackerClient, err := crashtracker.GetClient(ctx, crashTrackerOptions)
			if err != nil {
				log.Ctx(ctx).Fatalf("error creating crash tracker client: %s", err.Error())
			}
			defer crashTrackerClient.FlushEvents(2 * time.Second)
			wizardOpts.CrashTrackerClient = crashTrackerClient
			wizardOpts.Out = cmd.OutOrStdout()

			wizardService.StartWizard(ctx, wizardOpts)
		},
	}
	err := configOpts.Init(cmd)
	if err != nil {
		log.Fatalf("Error initializing a config option: %s", err.Error())
	}

	return cmd
}
