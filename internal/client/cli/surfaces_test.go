package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/lostfound/internal/auth/form"
	"github.com/dmitrijs2005/lostfound/internal/auth/strength"
	"github.com/dmitrijs2005/lostfound/internal/auth/validation"
	"github.com/dmitrijs2005/lostfound/internal/catalog"
	"github.com/dmitrijs2005/lostfound/internal/common"
	"github.com/dmitrijs2005/lostfound/internal/flow"
	"github.com/dmitrijs2005/lostfound/internal/notify"
)

func TestStrengthBar(t *testing.T) {
	var out bytes.Buffer
	bar := strengthBar{w: &out}

	bar.RenderStrength(strength.BucketFair, 50)
	bar.RenderStrength(strength.BucketNone, 0)

	assert.Equal(t,
		"[##########----------] Fair\n"+
			"[--------------------] Password strength\n",
		out.String())
}

func TestNotificationLine(t *testing.T) {
	var out bytes.Buffer
	n := notificationLine{w: &out}

	n.Mount(notify.Notification{Kind: notify.KindSuccess, Message: "Saved"})
	n.Update(notify.Notification{Kind: notify.KindSuccess, Message: "Saved", State: notify.StateVisible})

	assert.Equal(t, "[success] Saved\n", out.String())
}

func TestNavigator_DoesNotBlock(t *testing.T) {
	ch := make(chan flow.Destination, 1)
	nav := navigator{ch: ch}

	nav.Navigate(flow.DestinationListing)
	nav.Navigate(flow.DestinationLogin)

	assert.Equal(t, flow.DestinationListing, <-ch)
	assert.Empty(t, ch)
}

func TestFormView(t *testing.T) {
	var out bytes.Buffer
	failed := make(chan error, 1)
	v := formView{w: &out, failed: failed}

	v.render(form.View{State: form.StatePending, SubmitLabel: form.LoadingLabel})
	v.render(form.View{State: form.StateIdle, Errors: map[validation.Field]string{
		validation.FieldEmail: "Please enter a valid email address",
	}})
	v.render(form.View{State: form.StateFailed})

	assert.Equal(t, "Please wait...\nEmail: Please enter a valid email address\n", out.String())
	assert.ErrorIs(t, <-failed, common.ErrAuthenticationFailed)
}

func TestListingPrinter(t *testing.T) {
	var out bytes.Buffer
	p := listingPrinter{w: &out}

	p.Present(catalog.FilterLost, []catalog.Entry{{
		ID: "1", Kind: catalog.KindLost, Title: "Umbrella", Category: "Misc",
		Location: "Station", Date: "Aug 1, 2023", Description: "Blue umbrella",
	}})

	assert.Equal(t,
		"Lost items (1)\n"+
			"  #1 [lost] Umbrella | Misc | Station | Aug 1, 2023\n"+
			"      Blue umbrella\n",
		out.String())
}
