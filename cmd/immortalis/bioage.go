package immortalis

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/nicolaskremer1/immortalis-blueprint/internal/bioage"
)

var (
	verdictGood = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")).Bold(true)
	verdictWarn = lipgloss.NewStyle().Foreground(lipgloss.Color("#fab387")).Bold(true)
)

var bioageCmd = &cobra.Command{
	Use:   "bioage",
	Short: "Estimate biological age",
}

var (
	bioAge          int
	bioSex          string
	bioBMI          float64
	bioSleepHours   int
	bioSleepMinutes int
	bioExercise     float64

	bioSleepQuality int
	bioIntensity    int
	bioCalories     int
	bioVeggies      int
	bioSystolic     int
	bioCholesterol  int
)

var bioageQuickCmd = &cobra.Command{
	Use:   "quick",
	Short: "Quick estimate from age, sex, BMI, sleep and weekly exercise",
	RunE: func(cmd *cobra.Command, args []string) error {
		sex, err := bioage.ParseSex(bioSex)
		if err != nil {
			return err
		}
		sleep, err := bioage.HoursMinutes(bioSleepHours, bioSleepMinutes)
		if err != nil {
			return err
		}
		res, err := bioage.Quick(bioage.QuickInput{
			Age:           bioAge,
			Sex:           sex,
			BMI:           bioBMI,
			SleepHours:    sleep,
			ExerciseHours: bioExercise,
		})
		if err != nil {
			return err
		}
		printBioAge(cmd.OutOrStdout(), res)
		return nil
	},
}

var bioageDetailedCmd = &cobra.Command{
	Use:   "detailed",
	Short: "Detailed estimate from sleep, exercise, nutrition and biomarkers",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := bioage.DetailedInput{
			Age:               bioAge,
			SleepQuality:      bioSleepQuality,
			ExerciseIntensity: bioIntensity,
			VeggieServings:    bioVeggies,
			SystolicBP:        bioSystolic,
			Cholesterol:       bioCholesterol,
		}
		flags := cmd.Flags()
		if flags.Changed("sleep-hours") || flags.Changed("sleep-minutes") {
			sleep, err := bioage.HoursMinutes(bioSleepHours, bioSleepMinutes)
			if err != nil {
				return err
			}
			in.SleepHours = &sleep
		}
		if flags.Changed("exercise-hours") {
			in.ExerciseHours = &bioExercise
		}
		if flags.Changed("calories") {
			in.Calories = &bioCalories
		}
		res, err := bioage.Detailed(in)
		if err != nil {
			return err
		}
		printBioAge(cmd.OutOrStdout(), res)
		if len(res.Comparison) > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "METRIC\tAGE")
			for _, row := range res.Comparison {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", row.Metric, bioage.FormatYears(row.Age))
			}
		}
		return nil
	},
}

func printBioAge(w io.Writer, res bioage.Result) {
	fmt.Fprintf(w, "Chronological age\t%d\n", res.ChronologicalAge)
	fmt.Fprintf(w, "Biological age\t%s\n", bioage.FormatYears(res.BiologicalAge))
	style := verdictWarn
	if res.Verdict == bioage.VerdictYounger {
		style = verdictGood
	}
	fmt.Fprintln(w, style.Render(res.Summary()))
}

func addCommonBioFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&bioAge, "age", 0, "Chronological age in years (18-120)")
	cmd.Flags().IntVar(&bioSleepHours, "sleep-hours", 7, "Nightly sleep, whole hours")
	cmd.Flags().IntVar(&bioSleepMinutes, "sleep-minutes", 0, "Nightly sleep, extra minutes (0-59)")
	cmd.Flags().Float64Var(&bioExercise, "exercise-hours", 0, "Exercise hours per week (0-168)")
	_ = cmd.MarkFlagRequired("age")
}

func init() {
	rootCmd.AddCommand(bioageCmd)
	bioageCmd.AddCommand(bioageQuickCmd, bioageDetailedCmd)

	addCommonBioFlags(bioageQuickCmd)
	bioageQuickCmd.Flags().StringVar(&bioSex, "sex", "", "male or female")
	bioageQuickCmd.Flags().Float64Var(&bioBMI, "bmi", 22, "Body mass index (10-50)")
	_ = bioageQuickCmd.MarkFlagRequired("sex")

	addCommonBioFlags(bioageDetailedCmd)
	bioageDetailedCmd.Flags().IntVar(&bioSleepQuality, "sleep-quality", 5, "Sleep quality (1-10)")
	bioageDetailedCmd.Flags().IntVar(&bioIntensity, "exercise-intensity", 5, "Exercise intensity (1-10)")
	bioageDetailedCmd.Flags().IntVar(&bioCalories, "calories", 0, "Daily calories (500-5000, optional)")
	bioageDetailedCmd.Flags().IntVar(&bioVeggies, "veggies", 3, "Vegetable servings per day (0-20)")
	bioageDetailedCmd.Flags().IntVar(&bioSystolic, "systolic-bp", 120, "Systolic blood pressure (80-200)")
	bioageDetailedCmd.Flags().IntVar(&bioCholesterol, "cholesterol", 200, "Total cholesterol (100-300)")
}
