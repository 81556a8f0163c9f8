// MIT License
//
// Copyright (c) 2025 Advanced Micro Devices, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package readiness

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/api/v1beta1"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/constants"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/wizard"
)

var defaultClusterValidationIDs = []string{
	"sufficient-masters-count",
	"odf-requirements-satisfied",
	"lso-requirements-satisfied",
	"cnv-requirements-satisfied",
}

var defaultHostValidationIDs = []string{
	"odf-requirements-satisfied",
	"lso-requirements-satisfied",
	"cnv-requirements-satisfied",
	"connected",
}

func newAgentClusterInstall(group string, ids ...string) *v1beta1.AgentClusterInstall {
	aci := &v1beta1.AgentClusterInstall{
		ObjectMeta: metav1.ObjectMeta{Name: "test-cluster", Namespace: "test-cluster"},
	}
	aci.Status.DebugInfo.State = string(constants.ClusterStatusInsufficient)
	aci.Status.ValidationsInfo = v1beta1.ValidationsInfo{group: {}}
	for _, id := range ids {
		aci.Status.ValidationsInfo[group] = append(aci.Status.ValidationsInfo[group], v1beta1.Validation{
			ID: id, Status: "success", Message: "A validation message",
		})
	}
	return aci
}

func newAgents(group string, ids ...string) []v1beta1.Agent {
	agent := v1beta1.Agent{
		Spec: v1beta1.AgentSpec{Approved: true, Role: v1beta1.AgentRoleAutoAssign, Hostname: "test-hostname"},
	}
	agent.Status.DebugInfo.State = string(constants.HostStatusInsufficient)
	agent.Status.ValidationsInfo = v1beta1.ValidationsInfo{group: {}}
	for _, id := range ids {
		agent.Status.ValidationsInfo[group] = append(agent.Status.ValidationsInfo[group], v1beta1.Validation{
			ID: id, Status: "success", Message: "A host validation message",
		})
	}
	return []v1beta1.Agent{agent}
}

var _ = Describe("AgentClusterInstall wizard transitions", func() {
	Context("with a ready cluster", func() {
		It("requires a reported state", func() {
			aci := &v1beta1.AgentClusterInstall{}
			Expect(CanNextFromHostSelectionStep(aci, nil)).To(BeFalse())

			aci.Status.DebugInfo.State = string(constants.ClusterStatusReady)
			aci.Status.ValidationsInfo = v1beta1.ValidationsInfo{}
			Expect(CanNextFromHostSelectionStep(aci, nil)).To(BeTrue())
		})

		It("is false without a reported state even when conditions classify as ready", func() {
			aci := &v1beta1.AgentClusterInstall{}
			aci.Status.Conditions = []metav1.Condition{
				{Type: constants.ConditionCompleted, Status: metav1.ConditionTrue, Reason: constants.ReasonInstallationCompleted},
			}
			Expect(CanNextFromReviewStep(aci, nil)).To(BeFalse())
		})
	})

	Context("with an insufficient cluster and no agents", func() {
		var aci *v1beta1.AgentClusterInstall

		BeforeEach(func() {
			aci = newAgentClusterInstall("hostsData", defaultClusterValidationIDs...)
		})

		It("passes when the required validations succeed", func() {
			Expect(CanNextFromHostSelectionStep(aci, nil)).To(BeTrue())
		})

		It("tolerates disabled validations", func() {
			aci.Status.ValidationsInfo["hostsData"][3].Status = "disabled"
			Expect(CanNextFromHostSelectionStep(aci, nil)).To(BeTrue())
		})

		DescribeTable("blocks on non passing required validations",
			func(status string) {
				aci.Status.ValidationsInfo["hostsData"][3].Status = status
				Expect(CanNextFromHostSelectionStep(aci, nil)).To(BeFalse())
			},
			Entry("pending", "pending"),
			Entry("error", "error"),
			Entry("failure", "failure"),
		)

		It("ignores validations irrelevant to the step", func() {
			aci.Status.ValidationsInfo["hostsData"] = append(aci.Status.ValidationsInfo["hostsData"], v1beta1.Validation{
				ID: "all-hosts-are-ready-to-install", Status: "error", Message: "A failing message",
			})
			Expect(CanNextFromHostSelectionStep(aci, nil)).To(BeTrue())
		})

		It("blocks when a required validation is missing", func() {
			validations := aci.Status.ValidationsInfo["hostsData"]
			aci.Status.ValidationsInfo["hostsData"] = append(validations[:1:1], validations[2:]...)
			Expect(CanNextFromHostSelectionStep(aci, nil)).To(BeFalse())

			aci.Status.ValidationsInfo["hostsData"] = append(aci.Status.ValidationsInfo["hostsData"], v1beta1.Validation{
				ID: "odf-requirements-satisfied", Status: "success",
			})
			Expect(CanNextFromHostSelectionStep(aci, nil)).To(BeTrue())
		})
	})

	Context("with agents", func() {
		var aci *v1beta1.AgentClusterInstall

		BeforeEach(func() {
			aci = newAgentClusterInstall("hostsData", defaultClusterValidationIDs...)
		})

		It("blocks agents missing required validations", func() {
			Expect(CanNextFromHostSelectionStep(aci, newAgents("hardware", "connected"))).To(BeFalse())
		})

		It("follows the agent validation states", func() {
			agents := newAgents("hardware", defaultHostValidationIDs...)
			Expect(CanNextFromHostSelectionStep(aci, agents)).To(BeTrue())

			agents[0].Status.ValidationsInfo["hardware"][1].Status = "disabled"
			Expect(CanNextFromHostSelectionStep(aci, agents)).To(BeTrue())

			agents[0].Status.ValidationsInfo["hardware"][1].Status = "error"
			Expect(CanNextFromHostSelectionStep(aci, agents)).To(BeFalse())
		})

		It("requires the whole hardware group to pass", func() {
			agents := newAgents("hardware", defaultHostValidationIDs...)
			agents[0].Status.ValidationsInfo["hardware"][3].Status = "error"
			Expect(CanNextFromHostSelectionStep(aci, agents)).To(BeFalse())
		})

		It("ignores failures in groups the step does not gate on", func() {
			agents := newAgents("hardware", defaultHostValidationIDs...)
			agents[0].Status.ValidationsInfo["infrastructure"] = []v1beta1.Validation{
				{ID: "belongs-to-machine-cidr", Status: "error", Message: "A host validation message"},
			}
			Expect(CanNextFromHostSelectionStep(aci, agents)).To(BeTrue())
		})

		It("blocks agents without the mandatory groups", func() {
			Expect(CanNextFromHostSelectionStep(aci, newAgents("hardware"))).To(BeFalse())
			Expect(CanNextFromHostSelectionStep(aci, newAgents("network"))).To(BeFalse())
		})

		It("drives host discovery and host selection with the same table", func() {
			agents := newAgents("hardware", defaultHostValidationIDs...)
			Expect(CanNextFromHostDiscoveryStep(aci, agents)).To(BeTrue())
			Expect(CanNextFromHostSelectionStep(aci, agents)).To(BeTrue())
		})
	})

	Context("on the networking step", func() {
		It("requires the network group on the cluster", func() {
			Expect(CanNextFromNetworkingStep(newAgentClusterInstall("hostsData", defaultClusterValidationIDs...), nil)).To(BeFalse())
			Expect(CanNextFromNetworkingStep(newAgentClusterInstall("network"), nil)).To(BeTrue())
		})

		It("tolerates failing soft validations only", func() {
			aci := newAgentClusterInstall("network", "api-vips-defined", "api-vips-valid")
			Expect(CanNextFromNetworkingStep(aci, nil)).To(BeTrue())

			aci.Status.ValidationsInfo["network"][0].Status = "error"
			Expect(CanNextFromNetworkingStep(aci, nil)).To(BeFalse())
			aci.Status.ValidationsInfo["network"][0].Status = "success"
			Expect(CanNextFromNetworkingStep(aci, nil)).To(BeTrue())

			agents := newAgents("network", "ntp-synced", "has-default-route")
			Expect(CanNextFromNetworkingStep(aci, agents)).To(BeTrue())

			agents[0].Status.ValidationsInfo["network"][0].Status = "error"
			Expect(CanNextFromNetworkingStep(aci, agents)).To(BeTrue())

			agents[0].Status.ValidationsInfo["network"][1].Status = "error"
			Expect(CanNextFromNetworkingStep(aci, agents)).To(BeFalse())
		})
	})

	Context("on the cluster details step", func() {
		It("requires the pull secret and the DNS domain", func() {
			aci := newAgentClusterInstall("configuration", "pull-secret-set", "dns-domain-defined")
			Expect(CanNextFromClusterDetailsStep(aci, nil)).To(BeTrue())

			aci.Status.ValidationsInfo["configuration"][1].Status = "pending"
			Expect(CanNextFromClusterDetailsStep(aci, nil)).To(BeFalse())
		})
	})
})

var _ = Describe("StepAgentStatus", func() {
	It("returns discovered agents untouched", func() {
		agents := newAgents("hardware", defaultHostValidationIDs...)
		agents[0].Spec.Approved = false

		result := StepAgentStatus(&agents[0], wizard.StepHostsDiscovery, false)
		Expect(result.Status).To(Equal(constants.HostStatusDiscovered))
		Expect(result.ValidationsInfo).To(HaveKey("hardware"))
		Expect(result.Sublabel).To(BeEmpty())
	})

	It("hides validations of agents with spec sync errors", func() {
		agents := newAgents("hardware", defaultHostValidationIDs...)
		agents[0].Status.Conditions = []metav1.Condition{
			{Type: constants.ConditionSpecSynced, Status: metav1.ConditionFalse, Reason: "InputError"},
		}

		result := StepAgentStatus(&agents[0], wizard.StepHostsDiscovery, false)
		Expect(result.Status).To(Equal(constants.HostStatusSpecSyncErr))
		Expect(result.ValidationsInfo).To(BeEmpty())
	})

	It("promotes insufficient agents passing the step", func() {
		agents := newAgents("hardware", defaultHostValidationIDs...)
		agents[0].Status.ValidationsInfo["network"] = []v1beta1.Validation{{ID: "has-default-route", Status: "failure"}}

		result := StepAgentStatus(&agents[0], wizard.StepHostsDiscovery, false)
		Expect(result.Status).To(Equal(constants.HostStatusKnown))
		Expect(result.ValidationsInfo).To(HaveKey("hardware"))
		Expect(result.ValidationsInfo).NotTo(HaveKey("network"))
		Expect(result.Sublabel).To(BeEmpty())
	})

	It("labels agents failing only soft validations", func() {
		agents := newAgents("network", "ntp-synced", "has-default-route")
		agents[0].Status.ValidationsInfo["network"][0].Status = "failure"

		result := StepAgentStatus(&agents[0], wizard.StepNetworking, false)
		Expect(result.Status).To(Equal(constants.HostStatusKnown))
		Expect(result.Sublabel).To(Equal(SublabelSomeValidationsFailed))
	})

	It("does not share validations with the agent", func() {
		agents := newAgents("hardware", defaultHostValidationIDs...)
		agents[0].Spec.Approved = false

		result := StepAgentStatus(&agents[0], wizard.StepHostsDiscovery, false)
		result.ValidationsInfo["hardware"][0].Status = "failure"
		Expect(agents[0].Status.ValidationsInfo["hardware"][0].Status).To(Equal("success"))
	})
})
