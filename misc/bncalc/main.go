package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	bignum "github.com/shabbyrobe/go-bignum"
)

// bncalc is a small calculator over BigNum values, handy for eyeballing the
// solvers at a given precision:
//
//	bncalc --decimals 60 eval sqrt 2
//	bncalc --int-length 1 --decimals 1000 pi
//	BNCALC_DECIMALS=30 bncalc eval atan2 -1 -1
//	bncalc dump -- -1.5
//
// Flags may also come from a config file (--config) in any format viper
// understands, using the flag names as keys.

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	cmd := newRootCmd(out)
	cmd.SetArgs(args)
	return cmd.Execute()
}

type calc struct {
	v   *viper.Viper
	out io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	cl := &calc{v: viper.New(), out: out}

	root := &cobra.Command{
		Use:           "bncalc",
		Short:         "Fixed point arbitrary precision calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cl.loadConfig(cmd.Flags())
		},
	}

	flags := root.PersistentFlags()
	flags.Int("int-length", 4, "bytes in the integer part (1, 2 or 4)")
	flags.Int("decimals", 50, "decimal digits after the point")
	flags.Int("digits", 0, "digits to print (0 prints all of them)")
	flags.Bool("no-escalation", false, "run the Newton solvers at full precision throughout")
	flags.String("config", "", "config file")

	root.AddCommand(cl.evalCmd(), cl.piCmd(), cl.dumpCmd())
	return root
}

func (cl *calc) loadConfig(flags *pflag.FlagSet) error {
	v := cl.v
	v.SetEnvPrefix("BNCALC")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return errors.Wrap(err, "bncalc: bind flags")
	}
	if cfg := v.GetString("config"); cfg != "" {
		v.SetConfigFile(cfg)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "bncalc: read config %q", cfg)
		}
	}
	return nil
}

func (cl *calc) context() (*bignum.Context, error) {
	c, err := bignum.NewContextDecimals(cl.v.GetInt("int-length"), cl.v.GetInt("decimals"))
	if err != nil {
		return nil, err
	}
	c.SetEscalation(!cl.v.GetBool("no-escalation"))
	return c, nil
}

func (cl *calc) print(c *bignum.Context, n bignum.BigNum) {
	fmt.Fprintln(cl.out, c.String(n, cl.v.GetInt("digits")))
}

// report logs any conditions the context raised. They do not fail the
// command; the saturated or best effort result has already been printed.
func (cl *calc) report(c *bignum.Context) {
	if err := c.Err(); err != nil {
		log.Println(err)
	}
}

type evalOp struct {
	args int
	fn   func(c *bignum.Context, r bignum.BigNum, in []bignum.BigNum)
}

var evalOps = map[string]evalOp{
	"add":   {2, func(c *bignum.Context, r bignum.BigNum, in []bignum.BigNum) { c.Add(r, in[0], in[1]) }},
	"sub":   {2, func(c *bignum.Context, r bignum.BigNum, in []bignum.BigNum) { c.Sub(r, in[0], in[1]) }},
	"mul":   {2, func(c *bignum.Context, r bignum.BigNum, in []bignum.BigNum) { c.Mult(r, in[0], in[1]) }},
	"div":   {2, func(c *bignum.Context, r bignum.BigNum, in []bignum.BigNum) { c.Div(r, in[0], in[1]) }},
	"atan2": {2, func(c *bignum.Context, r bignum.BigNum, in []bignum.BigNum) { c.Atan2(r, in[0], in[1]) }},
	"neg":   {1, func(c *bignum.Context, r bignum.BigNum, in []bignum.BigNum) { c.Neg(r, in[0]) }},
	"sq":    {1, func(c *bignum.Context, r bignum.BigNum, in []bignum.BigNum) { c.Square(r, in[0]) }},
	"inv":   {1, func(c *bignum.Context, r bignum.BigNum, in []bignum.BigNum) { c.Inverse(r, in[0]) }},
	"sqrt":  {1, func(c *bignum.Context, r bignum.BigNum, in []bignum.BigNum) { c.Sqrt(r, in[0]) }},
	"exp":   {1, func(c *bignum.Context, r bignum.BigNum, in []bignum.BigNum) { c.Exp(r, in[0]) }},
	"ln":    {1, func(c *bignum.Context, r bignum.BigNum, in []bignum.BigNum) { c.Ln(r, in[0]) }},
	"atan":  {1, func(c *bignum.Context, r bignum.BigNum, in []bignum.BigNum) { c.Atan(r, in[0]) }},
	"sin":   {1, func(c *bignum.Context, r bignum.BigNum, in []bignum.BigNum) { c.SinCos(r, c.New(), in[0]) }},
	"cos":   {1, func(c *bignum.Context, r bignum.BigNum, in []bignum.BigNum) { c.SinCos(c.New(), r, in[0]) }},
}

func evalOpNames() string {
	names := make([]string, 0, len(evalOps))
	for k := range evalOps {
		names = append(names, k)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func (cl *calc) evalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <op> <args...>",
		Short: "Apply an operation and print the result",
		Long:  "Apply an operation and print the result. Ops: " + evalOpNames(),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, ok := evalOps[args[0]]
			if !ok {
				return errors.Errorf("bncalc: unknown op %q, expected one of %s", args[0], evalOpNames())
			}
			if len(args)-1 != op.args {
				return errors.Errorf("bncalc: op %q takes %d args, found %d", args[0], op.args, len(args)-1)
			}

			c, err := cl.context()
			if err != nil {
				return err
			}
			in := make([]bignum.BigNum, op.args)
			for i, s := range args[1:] {
				in[i] = c.New()
				if err := c.SetString(in[i], s); err != nil {
					return err
				}
			}

			r := c.New()
			op.fn(c, r, in)
			cl.print(c, r)
			cl.report(c)
			return nil
		},
	}
}

func (cl *calc) piCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pi",
		Short: "Print π",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cl.context()
			if err != nil {
				return err
			}
			cl.print(c, c.Pi(c.New()))
			return nil
		},
	}
}

func (cl *calc) dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <value>",
		Short: "Show the bytes of a value and its saved form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cl.context()
			if err != nil {
				return err
			}
			n := c.New()
			if err := c.SetString(n, args[0]); err != nil {
				return err
			}
			cl.print(c, n)

			saved := c.Save(n)
			text, err := saved.MarshalText()
			if err != nil {
				return err
			}
			fmt.Fprintln(cl.out, string(text))
			spew.Fdump(cl.out, saved)
			return nil
		},
	}
}
