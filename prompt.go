package main

import "github.com/gdamore/tcell/v2"

// This file contains the hidden prompt page in the application.

func promptExit() {
	// check if we are already prompting
	currentPage, _ := EC.Pages.GetFrontPage()
	if currentPage == PagePrompt {
		return
	}

	// now check if the previous page is something other than the prompt already
	EC.PrevPage, _ = EC.Pages.GetFrontPage()
	if EC.PrevPage == PagePrompt {
		return
	}

	EC.PromptBox.ClearButtons().AddButtons(
		[]string{
			EC.T["PromptExitButtonExit"],
			EC.T["PromptExitButtonNo"],
			EC.T["PromptExitButtonCancel"],
		},
	).SetText(EC.T["PromptExitText"]).SetDoneFunc(
		func(buttonIndex int, buttonLabel string) {
			switch buttonIndex {
			case 0:
				EC.App.Stop()
			case 1:
				fallthrough
			case 2:
				fallthrough
			default:
				EC.Pages.SwitchToPage(EC.PrevPage)
				setBottomPageNavText()

				return
			}
		},
	).SetBackgroundColor(tcell.ColorGoldenrod).
		SetTextColor(tcell.ColorBlack)

	EC.Pages.SwitchToPage(PagePrompt)
	EC.PromptBox.SetFocus(2)
	EC.App.SetFocus(EC.PromptBox)
}
